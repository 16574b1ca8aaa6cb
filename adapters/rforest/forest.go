// Package rforest implements the random-forest predictive capability behind
// rf scoring: bagged CART ensembles for regression and classification with a
// scikit-learn style Fit/Predict/Score surface.
package rforest

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	defaultTrees           = 50
	defaultMinSamplesSplit = 2
	defaultMinSamplesLeaf  = 1
)

// config holds forest hyperparameters shared by both estimator kinds
type config struct {
	trees     int
	maxDepth  int
	minSplit  int
	minLeaf   int
	bootstrap bool
	seed      int64
}

// Option is a functional configuration knob for forest construction
type Option func(*config)

// WithTrees sets the ensemble size
func WithTrees(n int) Option { return func(c *config) { c.trees = n } }

// WithMaxDepth caps tree depth; 0 means unlimited
func WithMaxDepth(d int) Option { return func(c *config) { c.maxDepth = d } }

// WithBootstrap toggles bootstrap sampling
func WithBootstrap(b bool) Option { return func(c *config) { c.bootstrap = b } }

// WithSeed fixes the base random seed so repeated fits are reproducible
func WithSeed(seed int64) Option { return func(c *config) { c.seed = seed } }

func newConfig(opts []Option) config {
	c := config{
		trees:     defaultTrees,
		minSplit:  defaultMinSamplesSplit,
		minLeaf:   defaultMinSamplesLeaf,
		bootstrap: true,
		seed:      time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c config) params() treeParams {
	return treeParams{maxDepth: c.maxDepth, minSamplesSplit: c.minSplit, minSamplesLeaf: c.minLeaf}
}

// bootstrapIndices draws the per-tree training sample. Each tree derives its
// own rand source from the base seed so fits are reproducible and order
// independent.
func (c config) bootstrapIndices(tree, n int) []int {
	idx := make([]int, n)
	if !c.bootstrap {
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	rnd := rand.New(rand.NewSource(c.seed + int64(tree)))
	for i := range idx {
		idx[i] = rnd.Intn(n)
	}
	return idx
}

func validate(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("rforest: empty X")
	}
	if len(y) != len(X) {
		return errors.New("rforest: X and y length mismatch")
	}
	p := len(X[0])
	for _, row := range X {
		if len(row) != p {
			return errors.New("rforest: inconsistent feature count in X rows")
		}
	}
	return nil
}

// Regressor is a bagged CART regression forest
type Regressor struct {
	cfg   config
	roots []*treeNode
}

// NewRegressor creates a regression forest with the given options
func NewRegressor(opts ...Option) *Regressor {
	return &Regressor{cfg: newConfig(opts)}
}

// Fit trains the forest, discarding any previous state
func (r *Regressor) Fit(X [][]float64, y []float64) error {
	if err := validate(X, y); err != nil {
		return err
	}
	r.roots = make([]*treeNode, r.cfg.trees)
	params := r.cfg.params()
	for t := range r.roots {
		idx := r.cfg.bootstrapIndices(t, len(X))
		r.roots[t] = buildRegressionTree(X, y, idx, 0, params)
	}
	return nil
}

// Predict returns the ensemble mean for each row of X
func (r *Regressor) Predict(X [][]float64) ([]float64, error) {
	if len(r.roots) == 0 {
		return nil, errors.New("rforest: regressor not fitted")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		sum := 0.0
		for _, root := range r.roots {
			sum += root.predict(row)
		}
		out[i] = sum / float64(len(r.roots))
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 on held-out data.
// When the target is constant the score is 1 for a perfect fit and 0
// otherwise; negative values mean worse-than-baseline fit and are
// returned as-is.
func (r *Regressor) Score(X [][]float64, y []float64) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(y) != len(pred) {
		return 0, errors.New("rforest: X and y length mismatch")
	}
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	ssRes, ssTot := 0.0, 0.0
	for i, v := range y {
		dRes := v - pred[i]
		dTot := v - mean
		ssRes += dRes * dRes
		ssTot += dTot * dTot
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}

// Classifier is a bagged CART classification forest. Distinct target values
// are the class labels; predictions are majority votes.
type Classifier struct {
	cfg   config
	roots []*treeNode
}

// NewClassifier creates a classification forest with the given options
func NewClassifier(opts ...Option) *Classifier {
	return &Classifier{cfg: newConfig(opts)}
}

// Fit trains the forest, discarding any previous state
func (c *Classifier) Fit(X [][]float64, y []float64) error {
	if err := validate(X, y); err != nil {
		return err
	}
	classes, classIdx := collectClasses(y)
	c.roots = make([]*treeNode, c.cfg.trees)
	params := c.cfg.params()
	for t := range c.roots {
		idx := c.cfg.bootstrapIndices(t, len(X))
		c.roots[t] = buildClassificationTree(X, y, idx, 0, params, classes, classIdx)
	}
	return nil
}

// Predict returns the majority-vote label for each row of X
func (c *Classifier) Predict(X [][]float64) ([]float64, error) {
	if len(c.roots) == 0 {
		return nil, errors.New("rforest: classifier not fitted")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		votes := make(map[float64]int)
		for _, root := range c.roots {
			votes[root.predict(row)]++
		}
		best, bestCount := math.NaN(), -1
		for label, count := range votes {
			if count > bestCount || (count == bestCount && label < best) {
				best, bestCount = label, count
			}
		}
		out[i] = best
	}
	return out, nil
}

// Score returns mean accuracy on held-out data
func (c *Classifier) Score(X [][]float64, y []float64) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(y) != len(pred) {
		return 0, errors.New("rforest: X and y length mismatch")
	}
	hits := 0
	for i, v := range y {
		if pred[i] == v {
			hits++
		}
	}
	return float64(hits) / float64(len(y)), nil
}

// collectClasses gathers distinct labels in first-seen order
func collectClasses(y []float64) ([]float64, map[float64]int) {
	classIdx := make(map[float64]int)
	var classes []float64
	for _, v := range y {
		if _, ok := classIdx[v]; !ok {
			classIdx[v] = len(classes)
			classes = append(classes, v)
		}
	}
	return classes, classIdx
}
