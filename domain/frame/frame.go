// Package frame provides the in-memory tabular data container used by
// relationship discovery: ordered named columns of equal length holding
// numeric or categorical values with explicit missing-value tracking.
// Frames are never mutated after construction; selection and row removal
// build copies.
package frame

import (
	"fmt"

	"github.com/battyone/beyond-correlation/domain/core"
)

// Column is a named sequence of values of consistent semantic type
type Column struct {
	Name   string
	values []Value
}

// NewColumn creates a column from raw values
func NewColumn(name string, values []Value) Column {
	return Column{Name: name, values: values}
}

// NewNumericColumn creates a numeric column; NaN entries become missing
func NewNumericColumn(name string, data []float64) Column {
	values := make([]Value, len(data))
	for i, v := range data {
		values[i] = Num(v)
	}
	return Column{Name: name, values: values}
}

// NewCategoricalColumn creates a categorical column; empty strings become missing
func NewCategoricalColumn(name string, data []string) Column {
	values := make([]Value, len(data))
	for i, s := range data {
		if s == "" {
			values[i] = NA()
		} else {
			values[i] = Cat(s)
		}
	}
	return Column{Name: name, values: values}
}

// Len returns the number of rows in the column
func (c Column) Len() int { return len(c.values) }

// Value returns the cell at row i
func (c Column) Value(i int) Value { return c.values[i] }

// IsNumeric reports whether every non-missing value in the column is numeric
func (c Column) IsNumeric() bool {
	for _, v := range c.values {
		if v.kind == KindCategorical {
			return false
		}
	}
	return true
}

// HasMissing reports whether any value in the column is missing
func (c Column) HasMissing() bool {
	for _, v := range c.values {
		if v.IsMissing() {
			return true
		}
	}
	return false
}

// Floats extracts the column as a float64 slice.
// Fails if the column contains categorical or missing values.
func (c Column) Floats() ([]float64, error) {
	out := make([]float64, len(c.values))
	for i, v := range c.values {
		if v.kind != KindNumeric {
			return nil, fmt.Errorf("%w: column %q row %d", core.ErrDataShape, c.Name, i)
		}
		out[i] = v.num
	}
	return out, nil
}

// Frame is an ordered set of named columns of equal length
type Frame struct {
	cols  []Column
	index map[string]int
}

// New builds a frame from columns, validating lengths and name uniqueness
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, core.ErrEmptyFrame
	}
	index := make(map[string]int, len(cols))
	rows := cols[0].Len()
	for i, c := range cols {
		if c.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				core.ErrLengthMismatch, c.Name, c.Len(), rows)
		}
		if _, dup := index[c.Name]; dup {
			return nil, core.NewValidationError("columns", fmt.Sprintf("duplicate column name %q", c.Name))
		}
		index[c.Name] = i
	}
	return &Frame{cols: cols, index: index}, nil
}

// Columns returns the column names in declaration order
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, core.NewColumnNotFoundError(name)
	}
	return f.cols[i], nil
}

// HasColumn reports whether a column with the given name exists
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// RowCount returns the number of rows
func (f *Frame) RowCount() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// ColumnCount returns the number of columns
func (f *Frame) ColumnCount() int { return len(f.cols) }

// Select builds a new frame holding copies of the named columns.
// The source frame is left untouched.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		src, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		values := make([]Value, len(src.values))
		copy(values, src.values)
		cols = append(cols, Column{Name: src.Name, values: values})
	}
	return New(cols...)
}

// DropMissing removes every row containing a missing value in any column,
// returning a new frame and the number of rows removed.
func (f *Frame) DropMissing() (*Frame, int) {
	rows := f.RowCount()
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		complete := true
		for _, c := range f.cols {
			if c.values[i].IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	cols := make([]Column, len(f.cols))
	for j, c := range f.cols {
		values := make([]Value, 0, len(keep))
		for _, i := range keep {
			values = append(values, c.values[i])
		}
		cols[j] = Column{Name: c.Name, values: values}
	}

	out := &Frame{cols: cols, index: make(map[string]int, len(cols))}
	for j, c := range cols {
		out.index[c.Name] = j
	}
	return out, rows - len(keep)
}
