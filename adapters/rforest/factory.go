package rforest

import (
	"github.com/battyone/beyond-correlation/ports"
)

// Factory builds forest estimators for the discovery engine. Both estimator
// kinds are parameterized identically so seeded runs are reproducible.
type Factory struct {
	opts []Option
}

// NewFactory creates an estimator factory with shared forest options
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) options(seed *int64) []Option {
	opts := append([]Option(nil), f.opts...)
	if seed != nil {
		opts = append(opts, WithSeed(*seed))
	}
	return opts
}

// NewRegressor returns a regression forest, seeded when seed is non-nil
func (f *Factory) NewRegressor(seed *int64) ports.Estimator {
	return NewRegressor(f.options(seed)...)
}

// NewClassifier returns a classification forest, seeded when seed is non-nil
func (f *Factory) NewClassifier(seed *int64) ports.Estimator {
	return NewClassifier(f.options(seed)...)
}
