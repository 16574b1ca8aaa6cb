package discovery

import (
	"github.com/battyone/beyond-correlation/domain/frame"
)

// EncodePair replaces every categorical column of a prepared pair with
// integer codes: each distinct observed label maps to a unique code in
// first-seen order. Numeric columns pass through unchanged. Codes are
// assigned independently per call; no cross-pair code reuse is guaranteed.
func EncodePair(pair *frame.Frame) (*frame.Frame, error) {
	names := pair.Columns()
	cols := make([]frame.Column, 0, len(names))
	for _, name := range names {
		col, err := pair.Column(name)
		if err != nil {
			return nil, err
		}
		if col.IsNumeric() {
			cols = append(cols, col)
			continue
		}
		cols = append(cols, encodeColumn(col))
	}
	return frame.New(cols...)
}

// encodeColumn label-encodes one categorical column. Missing values stay
// missing so downstream shape checks still catch a broken preparer.
func encodeColumn(col frame.Column) frame.Column {
	codes := make(map[string]int)
	values := make([]frame.Value, col.Len())
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsMissing() {
			values[i] = frame.NA()
			continue
		}
		label := v.Label()
		if v.Kind() == frame.KindNumeric {
			// mixed column: numeric cells get their own code space entry
			label = formatFloat(v.Float())
		}
		code, ok := codes[label]
		if !ok {
			code = len(codes)
			codes[label] = code
		}
		values[i] = frame.Num(float64(code))
	}
	return frame.NewColumn(col.Name, values)
}
