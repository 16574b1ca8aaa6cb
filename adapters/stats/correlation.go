// Package stats computes the classical bivariate correlation coefficients
// used as alternative relationship scores: Pearson, Spearman and Kendall.
// Constant columns yield NaN, consistent with classical correlation
// semantics; callers propagate the NaN rather than raising.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Pearson computes the linear correlation coefficient between x and y
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Spearman computes the rank correlation coefficient: Pearson correlation of
// tie-averaged ranks.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}
	return stat.Correlation(Ranks(x), Ranks(y), nil)
}

// Kendall computes Kendall's tau rank correlation coefficient. A constant
// column has no rank ordering, so the coefficient is undefined.
func Kendall(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}
	if isConstant(x) || isConstant(y) {
		return math.NaN()
	}
	return stat.Kendall(x, y, nil)
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

// Ranks converts values to 1-based ranks, averaging ranks across ties
func Ranks(data []float64) []float64 {
	n := len(data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return data[order[a]] < data[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && data[order[j]] == data[order[i]] {
			j++
		}
		// average rank across the tie group
		avg := float64(i+1) + float64(j-i-1)/2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}
