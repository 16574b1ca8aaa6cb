package discovery

import (
	"fmt"
	"strconv"

	"github.com/battyone/beyond-correlation/adapters/stats"
	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/frame"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/internal/crossval"
	"github.com/battyone/beyond-correlation/ports"
)

// cv folds for rf scoring
const kFolds = 3

// ScorePair computes the relationship score for a prepared, encoded pair.
// For rf the feature becomes a single-column input to the target's bound
// estimator and the score is the mean of k-fold cross-validated performance;
// for correlation methods it is the bivariate coefficient. Negative
// cross-validated regression scores are returned unclamped.
func ScorePair(pair *frame.Frame, feature, target string, method relate.Method, est ports.Estimator) (float64, error) {
	x, y, err := extractPair(pair, feature, target)
	if err != nil {
		return 0, err
	}

	switch method {
	case relate.MethodRF:
		X := make([][]float64, len(x))
		for i, v := range x {
			X[i] = []float64{v}
		}
		return crossval.MeanScore(est, X, y, kFolds)
	case relate.MethodPearson:
		return stats.Pearson(x, y), nil
	case relate.MethodSpearman:
		return stats.Spearman(x, y), nil
	case relate.MethodKendall:
		return stats.Kendall(x, y), nil
	default:
		return 0, fmt.Errorf("%w: %s", core.ErrUnknownMethod, method)
	}
}

// extractPair pulls both columns as float slices. A failure here means the
// preparer or encoder broke its contract; it is surfaced, never tolerated.
func extractPair(pair *frame.Frame, feature, target string) ([]float64, []float64, error) {
	fcol, err := pair.Column(feature)
	if err != nil {
		return nil, nil, err
	}
	tcol, err := pair.Column(target)
	if err != nil {
		return nil, nil, err
	}
	x, err := fcol.Floats()
	if err != nil {
		return nil, nil, err
	}
	y, err := tcol.Floats()
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
