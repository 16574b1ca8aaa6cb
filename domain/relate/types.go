// Package relate defines the result model of pairwise relationship
// discovery: scored feature/target pairs, missing-data diagnostics and
// the run records persisted by the result repository.
package relate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/battyone/beyond-correlation/domain/core"
)

// Method selects how a feature/target pair is scored
type Method int

const (
	// MethodRF scores a pair by mean cross-validated performance of a
	// random-forest estimator predicting the target from the feature.
	MethodRF Method = iota
	MethodPearson
	MethodSpearman
	MethodKendall
)

// methodNames maps methods to their wire names, in declaration order
var methodNames = map[Method]string{
	MethodRF:       "rf",
	MethodPearson:  "pearson",
	MethodSpearman: "spearman",
	MethodKendall:  "kendall",
}

// SupportedMethods lists the accepted method names
func SupportedMethods() []string {
	return []string{"pearson", "spearman", "kendall", "rf"}
}

// String returns the wire name of the method
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// MarshalJSON emits the wire name
func (m Method) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON accepts a wire name
func (m *Method) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsCorrelation reports whether the method is a classical correlation coefficient
func (m Method) IsCorrelation() bool {
	return m == MethodPearson || m == MethodSpearman || m == MethodKendall
}

// ParseMethod validates a method name. Unknown names fail fast with the
// supported set listed, before any pair processing begins.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "rf":
		return MethodRF, nil
	case "pearson":
		return MethodPearson, nil
	case "spearman":
		return MethodSpearman, nil
	case "kendall":
		return MethodKendall, nil
	default:
		return 0, fmt.Errorf("%w: %q, expected one of: %s",
			core.ErrUnknownMethod, s, strings.Join(SupportedMethods(), ", "))
	}
}

// ScoreRecord is the relationship score for one ordered (feature, target) pair
type ScoreRecord struct {
	Feature string  `json:"feature" db:"feature"`
	Target  string  `json:"target" db:"target"`
	Score   float64 `json:"score" db:"score"`
}

// scoreJSON mirrors ScoreRecord with a nullable score so NaN survives JSON
type scoreJSON struct {
	Feature string   `json:"feature"`
	Target  string   `json:"target"`
	Score   *float64 `json:"score"`
}

// MarshalJSON encodes a NaN score as null
func (s ScoreRecord) MarshalJSON() ([]byte, error) {
	out := scoreJSON{Feature: s.Feature, Target: s.Target}
	if !math.IsNaN(s.Score) {
		v := s.Score
		out.Score = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a null score to NaN
func (s *ScoreRecord) UnmarshalJSON(data []byte) error {
	var in scoreJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Feature, s.Target = in.Feature, in.Target
	if in.Score != nil {
		s.Score = *in.Score
	} else {
		s.Score = math.NaN()
	}
	return nil
}

// NaNInfo reports how much data was discarded for one ordered pair before scoring
type NaNInfo struct {
	Feature    string  `json:"feature" db:"feature"`
	Target     string  `json:"target" db:"target"`
	NDropped   int     `json:"n_dropped" db:"n_dropped"`
	PctDropped float64 `json:"pct_dropped" db:"pct_dropped"`
}

// PairError records a per-pair scoring failure. Pairs are independent, so a
// single malformed pair never aborts the rest of a run; its score is NaN and
// the failure is surfaced here.
type PairError struct {
	Feature string `json:"feature"`
	Target  string `json:"target"`
	Err     string `json:"error"`
}

// Result is the outcome of one discovery invocation. Scores follow
// target-major, feature-minor column order; NaNInfo is populated only when
// diagnostics were requested.
type Result struct {
	Scores   []ScoreRecord `json:"scores"`
	NaNInfo  []NaNInfo     `json:"nan_info,omitempty"`
	Failures []PairError   `json:"failures,omitempty"`
}

// Score looks up the score for an ordered pair
func (r *Result) Score(feature, target string) (float64, bool) {
	for _, s := range r.Scores {
		if s.Feature == feature && s.Target == target {
			return s.Score, true
		}
	}
	return 0, false
}

// DropInfo looks up the NaN diagnostics for an ordered pair
func (r *Result) DropInfo(feature, target string) (NaNInfo, bool) {
	for _, n := range r.NaNInfo {
		if n.Feature == feature && n.Target == target {
			return n, true
		}
	}
	return NaNInfo{}, false
}

// Run is a persisted discovery invocation with its full result
type Run struct {
	ID        core.RunID `json:"id"`
	Source    string     `json:"source"` // file name or caller-supplied label
	Method    Method     `json:"method"`
	Seed      *int64     `json:"seed,omitempty"`
	Columns   []string   `json:"columns"`
	Result    *Result    `json:"result"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewRun assembles a run record for persistence
func NewRun(source string, method Method, seed *int64, columns []string, result *Result) *Run {
	return &Run{
		ID:        core.NewRunID(),
		Source:    source,
		Method:    method,
		Seed:      seed,
		Columns:   columns,
		Result:    result,
		CreatedAt: time.Now(),
	}
}
