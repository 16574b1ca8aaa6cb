// Package crossval provides deterministic k-fold cross-validation scoring.
// Folds are consecutive index blocks (no shuffling), so repeated runs on the
// same data produce identical splits.
package crossval

import (
	"fmt"

	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/ports"
)

// Fold is one train/test partition of the sample indices
type Fold struct {
	Train []int
	Test  []int
}

// KFold partitions n samples into k consecutive folds. The first n%k folds
// receive one extra sample. Fails when there are fewer samples than folds.
func KFold(n, k int) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("crossval: need at least 2 folds, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("%w: %d samples for %d folds", core.ErrInsufficientData, n, k)
	}

	folds := make([]Fold, k)
	size := n / k
	extra := n % k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < extra {
			end++
		}
		test := make([]int, 0, end-start)
		train := make([]int, 0, n-(end-start))
		for j := 0; j < n; j++ {
			if j >= start && j < end {
				test = append(test, j)
			} else {
				train = append(train, j)
			}
		}
		folds[i] = Fold{Train: train, Test: test}
		start = end
	}
	return folds, nil
}

// MeanScore fits the estimator on each fold's training split and scores it on
// the held-out split, returning the arithmetic mean of the per-fold scores.
// The estimator is re-fit per fold; Fit resets its state.
func MeanScore(est ports.Estimator, X [][]float64, y []float64, k int) (float64, error) {
	folds, err := KFold(len(X), k)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, fold := range folds {
		trainX, trainY := subset(X, y, fold.Train)
		testX, testY := subset(X, y, fold.Test)
		if err := est.Fit(trainX, trainY); err != nil {
			return 0, fmt.Errorf("crossval: fit failed: %w", err)
		}
		score, err := est.Score(testX, testY)
		if err != nil {
			return 0, fmt.Errorf("crossval: score failed: %w", err)
		}
		total += score
	}
	return total / float64(len(folds)), nil
}

func subset(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	subX := make([][]float64, len(idx))
	subY := make([]float64, len(idx))
	for i, j := range idx {
		subX[i] = X[j]
		subY[i] = y[j]
	}
	return subX, subY
}
