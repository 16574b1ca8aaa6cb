// Package discovery implements the pairwise relationship discovery core:
// per-target estimator selection, pair preparation with missing-value
// bookkeeping, categorical encoding and score computation, driven over every
// ordered column pair of a frame.
package discovery

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/frame"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/ports"
)

// Options configures one discovery invocation
type Options struct {
	// Method selects rf or a correlation coefficient; zero value is rf
	Method relate.Method

	// ClassifierOverrides names columns treated as classification targets.
	// Names absent from the frame are silently ignored.
	ClassifierOverrides []string

	// Seed, when set, makes rf scoring reproducible
	Seed *int64

	// IncludeNAInfo attaches per-pair drop diagnostics to the result
	IncludeNAInfo bool

	// Workers > 1 scores pairs concurrently. Output ordering is identical
	// to the sequential path; each worker unit constructs its own estimator.
	Workers int
}

// Engine drives relationship discovery over a frame
type Engine struct {
	factory ports.EstimatorFactory
}

// NewEngine creates a discovery engine backed by the given estimator factory
func NewEngine(factory ports.EstimatorFactory) *Engine {
	return &Engine{factory: factory}
}

// pairTask is one ordered (feature, target) unit of work
type pairTask struct {
	pos     int
	feature string
	target  string
}

// Discover scores every ordered non-self column pair. Scores are emitted in
// target-major, feature-minor column order. Per-pair failures yield a NaN
// score plus a failure record; they never abort the remaining pairs.
func (e *Engine) Discover(ctx context.Context, f *frame.Frame, opts Options) (*relate.Result, error) {
	if f == nil || f.ColumnCount() == 0 {
		return nil, core.ErrEmptyFrame
	}
	if !opts.Method.IsCorrelation() && opts.Method != relate.MethodRF {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownMethod, opts.Method)
	}

	cols := f.Columns()
	bindings := SelectEstimators(cols, opts.ClassifierOverrides, e.factory, opts.Seed)

	tasks := make([]pairTask, 0, len(cols)*(len(cols)-1))
	for _, target := range cols {
		for _, feature := range cols {
			if feature == target {
				continue
			}
			tasks = append(tasks, pairTask{pos: len(tasks), feature: feature, target: target})
		}
	}

	scores := make([]relate.ScoreRecord, len(tasks))
	nanInfo := make([]relate.NaNInfo, len(tasks))
	failures := make([]*relate.PairError, len(tasks))

	run := func(t pairTask, est ports.Estimator) {
		score, info, err := e.scoreOne(f, t, opts.Method, est)
		nanInfo[t.pos] = info
		scores[t.pos] = relate.ScoreRecord{Feature: t.feature, Target: t.target, Score: score}
		if err != nil {
			failures[t.pos] = &relate.PairError{Feature: t.feature, Target: t.target, Err: err.Error()}
		}
	}

	if opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for _, t := range tasks {
			t := t
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// independent estimator per unit: bindings are not
				// safe for concurrent fitting
				run(t, bindings[t.target].NewEstimator())
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			run(t, bindings[t.target].Estimator())
		}
	}

	result := &relate.Result{Scores: scores}
	if opts.IncludeNAInfo {
		result.NaNInfo = nanInfo
	}
	for _, f := range failures {
		if f != nil {
			result.Failures = append(result.Failures, *f)
		}
	}
	return result, nil
}

// scoreOne runs preparation, encoding and scoring for a single pair.
// The NaN diagnostics are returned even when scoring fails.
func (e *Engine) scoreOne(f *frame.Frame, t pairTask, method relate.Method, est ports.Estimator) (float64, relate.NaNInfo, error) {
	pair, info, err := PreparePair(f, t.feature, t.target)
	if err != nil {
		return math.NaN(), info, err
	}
	encoded, err := EncodePair(pair)
	if err != nil {
		return math.NaN(), info, err
	}
	score, err := ScorePair(encoded, t.feature, t.target, method, est)
	if err != nil {
		return math.NaN(), info, err
	}
	return score, info, nil
}
