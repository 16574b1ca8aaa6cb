// Package testkit provides synthetic frames and fixtures for tests.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/battyone/beyond-correlation/domain/frame"
)

// Kit generates deterministic synthetic data
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a kit with a fixed seed for reproducibility
func NewKit() *Kit {
	return &Kit{rng: rand.New(rand.NewSource(42))}
}

// NewKitWithSeed creates a kit with an explicit seed
func NewKitWithSeed(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// LinearFrame builds a frame with columns a = 0..n-1, b = 2a, and c = a with
// uniform noise of the given amplitude. Strong monotone relationships
// throughout, useful for rank and forest scoring checks.
func (k *Kit) LinearFrame(n int, noise float64) *frame.Frame {
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = float64(i)
		b[i] = 2 * a[i]
		c[i] = a[i] + noise*k.rng.Float64()
	}
	f, err := frame.New(
		frame.NewNumericColumn("a", a),
		frame.NewNumericColumn("b", b),
		frame.NewNumericColumn("c", c),
	)
	if err != nil {
		panic(err)
	}
	return f
}

// MixedFrame builds a frame with a numeric column, a categorical column
// cycling through the given labels, and a constant column.
func (k *Kit) MixedFrame(n int, labels []string) *frame.Frame {
	x := make([]float64, n)
	cat := make([]string, n)
	constant := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = k.rng.NormFloat64() * 10
		cat[i] = labels[i%len(labels)]
		constant[i] = 7
	}
	f, err := frame.New(
		frame.NewNumericColumn("x", x),
		frame.NewCategoricalColumn("cat", cat),
		frame.NewNumericColumn("const", constant),
	)
	if err != nil {
		panic(err)
	}
	return f
}

// SparseFrame builds a two-column numeric frame where the feature column has
// missing values at the given row indices.
func (k *Kit) SparseFrame(n int, missingRows ...int) *frame.Frame {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = float64(i) * 3
	}
	for _, i := range missingRows {
		x[i] = math.NaN()
	}
	f, err := frame.New(
		frame.NewNumericColumn("x", x),
		frame.NewNumericColumn("y", y),
	)
	if err != nil {
		panic(err)
	}
	return f
}

// CSVRows renders a frame-shaped dataset as raw CSV lines for reader tests
func (k *Kit) CSVRows(headers []string, rows [][]string) []byte {
	out := ""
	line := func(cells []string) string {
		s := ""
		for i, c := range cells {
			if i > 0 {
				s += ","
			}
			s += c
		}
		return s + "\n"
	}
	out += line(headers)
	for _, r := range rows {
		out += line(r)
	}
	return []byte(out)
}

// Regression builds X/y training data with y = slope*x + intercept plus noise
func (k *Kit) Regression(n int, slope, intercept, noise float64) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		X[i] = []float64{x}
		y[i] = slope*x + intercept + noise*k.rng.NormFloat64()
	}
	return X, y
}

// Classification builds X/y training data with class = x bucket
func (k *Kit) Classification(n, classes int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		class := i % classes
		X[i] = []float64{float64(class)*10 + k.rng.Float64()}
		y[i] = float64(class)
	}
	return X, y
}

// Labels returns n cycling label strings like l0, l1, ...
func Labels(n, distinct int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("l%d", i%distinct)
	}
	return out
}
