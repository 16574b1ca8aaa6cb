package frame

import "math"

// Kind classifies a single cell value
type Kind int

const (
	KindMissing Kind = iota
	KindNumeric
	KindCategorical
)

// Value is one cell of a column: numeric, categorical or missing.
// Numeric NaN is treated as missing, matching the ingestion adapters.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num creates a numeric value; NaN collapses to missing
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{kind: KindMissing}
	}
	return Value{kind: KindNumeric, num: v}
}

// Cat creates a categorical value
func Cat(s string) Value {
	return Value{kind: KindCategorical, str: s}
}

// NA creates a missing value
func NA() Value {
	return Value{kind: KindMissing}
}

// Kind returns the value classification
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is absent
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload; NaN for non-numeric values
func (v Value) Float() float64 {
	if v.kind != KindNumeric {
		return math.NaN()
	}
	return v.num
}

// Label returns the categorical payload; empty for non-categorical values
func (v Value) Label() string {
	if v.kind != KindCategorical {
		return ""
	}
	return v.str
}
