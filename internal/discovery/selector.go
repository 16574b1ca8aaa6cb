package discovery

import (
	"github.com/battyone/beyond-correlation/ports"
)

// Binding couples a column with the estimator used when that column is the
// prediction target. Exactly one binding exists per column; the choice of
// classifier vs regressor depends only on override membership, never on data.
type Binding struct {
	Column         string
	Classification bool

	factory ports.EstimatorFactory
	seed    *int64
	shared  ports.Estimator
}

// Estimator returns the binding's shared instance, constructed lazily and
// reused across all features paired with this target. Fit resets estimator
// state, so sequential reuse across pairs is safe.
func (b *Binding) Estimator() ports.Estimator {
	if b.shared == nil {
		b.shared = b.build()
	}
	return b.shared
}

// NewEstimator constructs a fresh, independent estimator. Parallel pair
// scoring uses this so concurrent fits never share state.
func (b *Binding) NewEstimator() ports.Estimator {
	return b.build()
}

func (b *Binding) build() ports.Estimator {
	if b.Classification {
		return b.factory.NewClassifier(b.seed)
	}
	return b.factory.NewRegressor(b.seed)
}

// SelectEstimators produces one binding per column. Columns named in
// overrides get a classification capability, all others regression. Override
// names not present among columns are silently ignored.
func SelectEstimators(columns []string, overrides []string, factory ports.EstimatorFactory, seed *int64) map[string]*Binding {
	classify := make(map[string]bool, len(overrides))
	for _, name := range overrides {
		classify[name] = true
	}

	bindings := make(map[string]*Binding, len(columns))
	for _, col := range columns {
		bindings[col] = &Binding{
			Column:         col,
			Classification: classify[col],
			factory:        factory,
			seed:           seed,
		}
	}
	return bindings
}
