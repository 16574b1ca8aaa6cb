package rforest

import (
	"math"
	"testing"
)

func linearData(n int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i)}
		y[i] = 2 * float64(i)
	}
	return X, y
}

func TestRegressorLearnsLinearRelation(t *testing.T) {
	X, y := linearData(60)
	r := NewRegressor(WithSeed(1))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	score, err := r.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if score < 0.95 {
		t.Errorf("training score = %f, want >= 0.95", score)
	}
}

func TestRegressorConstantTarget(t *testing.T) {
	n := 30
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		X[i] = []float64{float64(i)}
		y[i] = 5
	}
	r := NewRegressor(WithSeed(1))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	// every leaf predicts the constant, so the fit is exact
	score, err := r.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("constant target score = %f, want 1", score)
	}
}

func TestRegressorSeedDeterminism(t *testing.T) {
	X, y := linearData(40)
	test := [][]float64{{3.5}, {17.2}, {38.9}}

	predict := func() []float64 {
		r := NewRegressor(WithSeed(99))
		if err := r.Fit(X, y); err != nil {
			t.Fatal(err)
		}
		out, err := r.Predict(test)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}

	first := predict()
	second := predict()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed gave different predictions: %v vs %v", first, second)
		}
	}
}

func TestRegressorNotFitted(t *testing.T) {
	r := NewRegressor()
	if _, err := r.Predict([][]float64{{1}}); err == nil {
		t.Error("predict before fit must fail")
	}
}

func TestFitValidation(t *testing.T) {
	r := NewRegressor(WithSeed(1))
	if err := r.Fit(nil, nil); err == nil {
		t.Error("empty X must fail")
	}
	if err := r.Fit([][]float64{{1}}, []float64{1, 2}); err == nil {
		t.Error("length mismatch must fail")
	}
	if err := r.Fit([][]float64{{1, 2}, {3}}, []float64{1, 2}); err == nil {
		t.Error("ragged X must fail")
	}
}

func TestClassifierSeparatesClasses(t *testing.T) {
	n := 60
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		class := float64(i % 3)
		X[i] = []float64{class*10 + float64(i%5)}
		y[i] = class
	}

	c := NewClassifier(WithSeed(7))
	if err := c.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	score, err := c.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if score < 0.95 {
		t.Errorf("accuracy = %f, want >= 0.95", score)
	}

	pred, err := c.Predict([][]float64{{1}, {11}, {21}})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 2}
	for i := range want {
		if pred[i] != want[i] {
			t.Errorf("pred[%d] = %f, want %f", i, pred[i], want[i])
		}
	}
}

func TestClassifierSingleClass(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{9, 9, 9, 9}
	c := NewClassifier(WithSeed(1))
	if err := c.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pred, err := c.Predict([][]float64{{0}, {100}})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pred {
		if p != 9 {
			t.Errorf("single-class prediction = %f, want 9", p)
		}
	}
}

func TestCollectClassesFirstSeenOrder(t *testing.T) {
	classes, idx := collectClasses([]float64{3, 1, 3, 2, 1})
	want := []float64{3, 1, 2}
	if len(classes) != 3 {
		t.Fatalf("classes = %v", classes)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("classes = %v, want %v", classes, want)
		}
		if idx[want[i]] != i {
			t.Errorf("idx[%f] = %d, want %d", want[i], idx[want[i]], i)
		}
	}
}

func TestDefaultEnsembleSize(t *testing.T) {
	r := NewRegressor()
	if r.cfg.trees != 50 {
		t.Errorf("default trees = %d, want 50", r.cfg.trees)
	}
}

func TestScoreWorseThanBaselineGoesNegative(t *testing.T) {
	// train on one regime, score on an inverted one
	X, y := linearData(30)
	r := NewRegressor(WithSeed(1))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	inverted := make([]float64, len(y))
	for i := range y {
		inverted[i] = -y[i]
	}
	score, err := r.Score(X, inverted)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(score) || score >= 0 {
		t.Errorf("score on inverted target = %f, want negative", score)
	}
}
