// Package ports defines the interfaces between the discovery core and its
// pluggable capabilities: predictive estimators and result persistence.
package ports

// Estimator is the predictive capability used by rf scoring. Fit discards any
// previous state, so a single instance may be re-fit repeatedly across folds
// and feature pairs; it is not safe for concurrent use.
type Estimator interface {
	// Fit trains on X (n rows of feature vectors) and target y
	Fit(X [][]float64, y []float64) error

	// Predict returns one prediction per row of X
	Predict(X [][]float64) ([]float64, error)

	// Score evaluates predictive performance on held-out data:
	// R-squared for regressors, mean accuracy for classifiers
	Score(X [][]float64, y []float64) (float64, error)
}

// EstimatorFactory constructs estimators. Both capabilities are parameterized
// identically; a nil seed yields non-deterministic estimators.
type EstimatorFactory interface {
	NewRegressor(seed *int64) Estimator
	NewClassifier(seed *int64) Estimator
}
