package stats

import (
	"math"
	"testing"
)

func TestPearsonPerfectLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	if r := Pearson(x, y); math.Abs(r-1) > 1e-12 {
		t.Errorf("Pearson = %f, want 1", r)
	}
	neg := []float64{10, 8, 6, 4, 2}
	if r := Pearson(x, neg); math.Abs(r+1) > 1e-12 {
		t.Errorf("Pearson = %f, want -1", r)
	}
}

func TestPearsonConstantColumnIsNaN(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	c := []float64{7, 7, 7, 7}
	if r := Pearson(x, c); !math.IsNaN(r) {
		t.Errorf("Pearson with constant column = %f, want NaN", r)
	}
	if r := Spearman(x, c); !math.IsNaN(r) {
		t.Errorf("Spearman with constant column = %f, want NaN", r)
	}
	if r := Kendall(x, c); !math.IsNaN(r) {
		t.Errorf("Kendall with constant column = %f, want NaN", r)
	}
}

func TestSpearmanMonotoneNonlinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Exp(v) // monotone but very nonlinear
	}
	if r := Spearman(x, y); math.Abs(r-1) > 1e-12 {
		t.Errorf("Spearman = %f, want 1", r)
	}
}

func TestKendallMonotone(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 20, 30, 40, 50}
	if r := Kendall(x, y); math.Abs(r-1) > 1e-12 {
		t.Errorf("Kendall = %f, want 1", r)
	}
	rev := []float64{50, 40, 30, 20, 10}
	if r := Kendall(x, rev); math.Abs(r+1) > 1e-12 {
		t.Errorf("Kendall = %f, want -1", r)
	}
}

func TestLengthMismatchIsNaN(t *testing.T) {
	if r := Pearson([]float64{1, 2}, []float64{1}); !math.IsNaN(r) {
		t.Errorf("mismatched lengths = %f, want NaN", r)
	}
	if r := Kendall(nil, nil); !math.IsNaN(r) {
		t.Errorf("empty input = %f, want NaN", r)
	}
}

func TestRanksAverageTies(t *testing.T) {
	ranks := Ranks([]float64{10, 20, 20, 30})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", ranks, want)
		}
	}
}

func TestRanksNoTies(t *testing.T) {
	ranks := Ranks([]float64{30, 10, 20})
	want := []float64{3, 1, 2}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", ranks, want)
		}
	}
}
