// Package profile computes per-column descriptive summaries used by the
// report builder and the ingest diagnostics.
package profile

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/battyone/beyond-correlation/domain/frame"
)

// ColumnProfile summarizes one column of a frame
type ColumnProfile struct {
	Name     string  `json:"name"`
	Rows     int     `json:"rows"`
	Missing  int     `json:"missing"`
	Numeric  bool    `json:"numeric"`
	Distinct int     `json:"distinct"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
}

// profileJSON mirrors ColumnProfile with nullable statistics so NaN survives
// JSON encoding
type profileJSON struct {
	Name     string   `json:"name"`
	Rows     int      `json:"rows"`
	Missing  int      `json:"missing"`
	Numeric  bool     `json:"numeric"`
	Distinct int      `json:"distinct"`
	Mean     *float64 `json:"mean,omitempty"`
	Median   *float64 `json:"median,omitempty"`
	StdDev   *float64 `json:"std_dev,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Q1       *float64 `json:"q1,omitempty"`
	Q3       *float64 `json:"q3,omitempty"`
}

// MarshalJSON drops undefined statistics instead of emitting NaN
func (p ColumnProfile) MarshalJSON() ([]byte, error) {
	out := profileJSON{
		Name:     p.Name,
		Rows:     p.Rows,
		Missing:  p.Missing,
		Numeric:  p.Numeric,
		Distinct: p.Distinct,
	}
	if p.Numeric {
		out.Mean = finiteOrNil(p.Mean)
		out.Median = finiteOrNil(p.Median)
		out.StdDev = finiteOrNil(p.StdDev)
		out.Min = finiteOrNil(p.Min)
		out.Max = finiteOrNil(p.Max)
		out.Q1 = finiteOrNil(p.Q1)
		out.Q3 = finiteOrNil(p.Q3)
	}
	return json.Marshal(out)
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Frame profiles every column. Numeric statistics are computed over
// non-missing cells only; a numeric column with no observed values reports
// NaN for each statistic.
func Frame(f *frame.Frame) []ColumnProfile {
	if f == nil {
		return nil
	}
	profiles := make([]ColumnProfile, 0, f.ColumnCount())
	for _, name := range f.Columns() {
		col, err := f.Column(name)
		if err != nil {
			continue
		}
		profiles = append(profiles, profileColumn(col))
	}
	return profiles
}

func profileColumn(col frame.Column) ColumnProfile {
	p := ColumnProfile{
		Name:    col.Name,
		Rows:    col.Len(),
		Numeric: col.IsNumeric(),
	}

	distinct := make(map[string]struct{})
	var observed []float64
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsMissing() {
			p.Missing++
			continue
		}
		if v.Kind() == frame.KindNumeric {
			observed = append(observed, v.Float())
			distinct[strconv.FormatFloat(v.Float(), 'g', -1, 64)] = struct{}{}
		} else {
			distinct[v.Label()] = struct{}{}
		}
	}
	p.Distinct = len(distinct)

	if !p.Numeric {
		return p
	}
	if len(observed) == 0 {
		p.Mean, p.Median, p.StdDev = math.NaN(), math.NaN(), math.NaN()
		p.Min, p.Max = math.NaN(), math.NaN()
		p.Q1, p.Q3 = math.NaN(), math.NaN()
		return p
	}

	data := stats.Float64Data(observed)
	p.Mean, _ = stats.Mean(data)
	p.Median, _ = stats.Median(data)
	p.StdDev, _ = stats.StandardDeviationSample(data)
	p.Min, _ = stats.Min(data)
	p.Max, _ = stats.Max(data)
	if q, err := stats.Quartile(data); err == nil {
		p.Q1, p.Q3 = q.Q1, q.Q3
	}
	return p
}
