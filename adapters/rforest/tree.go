package rforest

import (
	"math"
	"sort"
)

// treeNode is one node of a CART tree. Leaves carry a prediction; internal
// nodes split on x[feature] <= threshold.
type treeNode struct {
	leaf      bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
}

// treeParams are the per-tree growth limits shared by both tree kinds
type treeParams struct {
	maxDepth        int // 0 => unlimited
	minSamplesSplit int
	minSamplesLeaf  int
}

func (n *treeNode) predict(x []float64) float64 {
	node := n
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// splitCandidate is the best split found for one node
type splitCandidate struct {
	ok        bool
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

// valueIndex pairs a feature value with its sample index for threshold scans
type valueIndex struct {
	v float64
	i int
}

// buildRegressionTree grows a variance-reduction CART regressor over the
// sample indices in idx.
func buildRegressionTree(X [][]float64, y []float64, idx []int, depth int, p treeParams) *treeNode {
	mean, sse := meanSSE(y, idx)
	if len(idx) < p.minSamplesSplit || sse == 0 || (p.maxDepth > 0 && depth >= p.maxDepth) {
		return &treeNode{leaf: true, value: mean}
	}

	best := splitCandidate{}
	bestSSE := sse
	for f := range X[0] {
		cand, candSSE := bestRegressionSplit(X, y, idx, f, p.minSamplesLeaf)
		if cand.ok && candSSE < bestSSE {
			best = cand
			bestSSE = candSSE
		}
	}
	if !best.ok {
		return &treeNode{leaf: true, value: mean}
	}

	return &treeNode{
		feature:   best.feature,
		threshold: best.threshold,
		left:      buildRegressionTree(X, y, best.leftIdx, depth+1, p),
		right:     buildRegressionTree(X, y, best.rightIdx, depth+1, p),
	}
}

// bestRegressionSplit scans sorted thresholds of feature f minimizing the
// combined sum of squared errors of the two children.
func bestRegressionSplit(X [][]float64, y []float64, idx []int, f, minLeaf int) (splitCandidate, float64) {
	vals := sortedValues(X, idx, f)

	// prefix sums over the sorted order for O(n) SSE at every cut point
	n := len(vals)
	sum := make([]float64, n+1)
	sumSq := make([]float64, n+1)
	for i, vi := range vals {
		yv := y[vi.i]
		sum[i+1] = sum[i] + yv
		sumSq[i+1] = sumSq[i] + yv*yv
	}

	best := splitCandidate{}
	bestSSE := math.Inf(1)
	for s := 1; s < n; s++ {
		if vals[s].v == vals[s-1].v {
			continue
		}
		if s < minLeaf || n-s < minLeaf {
			continue
		}
		leftSSE := sumSq[s] - sum[s]*sum[s]/float64(s)
		rightN := float64(n - s)
		rightSum := sum[n] - sum[s]
		rightSSE := (sumSq[n] - sumSq[s]) - rightSum*rightSum/rightN
		if total := leftSSE + rightSSE; total < bestSSE {
			bestSSE = total
			best = splitCandidate{
				ok:        true,
				feature:   f,
				threshold: (vals[s-1].v + vals[s].v) / 2,
				leftIdx:   indices(vals[:s]),
				rightIdx:  indices(vals[s:]),
			}
		}
	}
	return best, bestSSE
}

// buildClassificationTree grows a gini-impurity CART classifier. Class labels
// are the distinct values of y; classIdx maps label -> dense class index.
func buildClassificationTree(X [][]float64, y []float64, idx []int, depth int, p treeParams, classes []float64, classIdx map[float64]int) *treeNode {
	counts := classCounts(y, idx, classIdx, len(classes))
	majority := classes[argmax(counts)]
	if isPure(counts) || len(idx) < p.minSamplesSplit || (p.maxDepth > 0 && depth >= p.maxDepth) {
		return &treeNode{leaf: true, value: majority}
	}

	parent := gini(counts, len(idx))
	best := splitCandidate{}
	bestGain := 0.0
	for f := range X[0] {
		cand, gain := bestClassificationSplit(X, y, idx, f, p.minSamplesLeaf, parent, classIdx, len(classes))
		if cand.ok && gain > bestGain {
			best = cand
			bestGain = gain
		}
	}
	if !best.ok {
		return &treeNode{leaf: true, value: majority}
	}

	return &treeNode{
		feature:   best.feature,
		threshold: best.threshold,
		left:      buildClassificationTree(X, y, best.leftIdx, depth+1, p, classes, classIdx),
		right:     buildClassificationTree(X, y, best.rightIdx, depth+1, p, classes, classIdx),
	}
}

func bestClassificationSplit(X [][]float64, y []float64, idx []int, f, minLeaf int, parent float64, classIdx map[float64]int, nClasses int) (splitCandidate, float64) {
	vals := sortedValues(X, idx, f)
	n := len(vals)

	leftCounts := make([]int, nClasses)
	rightCounts := classCounts(y, idx, classIdx, nClasses)

	best := splitCandidate{}
	bestGain := 0.0
	for s := 1; s < n; s++ {
		ci := classIdx[y[vals[s-1].i]]
		leftCounts[ci]++
		rightCounts[ci]--
		if vals[s].v == vals[s-1].v {
			continue
		}
		if s < minLeaf || n-s < minLeaf {
			continue
		}
		weighted := float64(s)/float64(n)*gini(leftCounts, s) +
			float64(n-s)/float64(n)*gini(rightCounts, n-s)
		if gain := parent - weighted; gain > bestGain {
			bestGain = gain
			best = splitCandidate{
				ok:        true,
				feature:   f,
				threshold: (vals[s-1].v + vals[s].v) / 2,
				leftIdx:   indices(vals[:s]),
				rightIdx:  indices(vals[s:]),
			}
		}
	}
	return best, bestGain
}

// helpers

func sortedValues(X [][]float64, idx []int, f int) []valueIndex {
	vals := make([]valueIndex, len(idx))
	for i, ii := range idx {
		vals[i] = valueIndex{v: X[ii][f], i: ii}
	}
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })
	return vals
}

func indices(vals []valueIndex) []int {
	out := make([]int, len(vals))
	for i, vi := range vals {
		out[i] = vi.i
	}
	return out
}

func meanSSE(y []float64, idx []int) (mean, sse float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, sse
}

func classCounts(y []float64, idx []int, classIdx map[float64]int, nClasses int) []int {
	counts := make([]int, nClasses)
	for _, i := range idx {
		counts[classIdx[y[i]]]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res += p * (1 - p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}
