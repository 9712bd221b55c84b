package dataset

import (
	"math"
	"strconv"
	"time"
)

// ColumnType classifies how a column's values are stored and analyzed
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeTimestamp   ColumnType = "timestamp"
)

// Column holds one named column of a frame. Numeric columns store values as
// float64 with NaN marking a missing entry. Categorical columns store raw
// labels with "" marking a missing entry. Timestamp columns carry parsed
// times with the zero time marking a missing entry.
type Column struct {
	Name   string
	Type   ColumnType
	Values []float64   // populated when Type == TypeNumeric
	Labels []string    // populated when Type == TypeCategorical
	Times  []time.Time // populated when Type == TypeTimestamp
}

// Len returns the number of rows stored in the column
func (c *Column) Len() int {
	switch c.Type {
	case TypeNumeric:
		return len(c.Values)
	case TypeTimestamp:
		return len(c.Times)
	default:
		return len(c.Labels)
	}
}

// MissingCount returns the number of missing entries in the column
func (c *Column) MissingCount() int {
	missing := 0
	switch c.Type {
	case TypeNumeric:
		for _, v := range c.Values {
			if math.IsNaN(v) {
				missing++
			}
		}
	case TypeTimestamp:
		for _, t := range c.Times {
			if t.IsZero() {
				missing++
			}
		}
	default:
		for _, l := range c.Labels {
			if l == "" {
				missing++
			}
		}
	}
	return missing
}

// Frame is an ordered collection of rows across named, typed columns.
// Row order is preserved on load and mutated only by drop operations.
type Frame struct {
	name    string
	columns []Column
	byName  map[string]int
	rows    int
}

// NewFrame creates an empty frame with the given display name
func NewFrame(name string) *Frame {
	return &Frame{
		name:   name,
		byName: make(map[string]int),
	}
}

// Name returns the frame's display name (usually the dataset stem)
func (f *Frame) Name() string { return f.name }

// NumRows returns the row count
func (f *Frame) NumRows() int { return f.rows }

// NumColumns returns the column count
func (f *Frame) NumColumns() int { return len(f.columns) }

// AddColumn appends a column. The first column added fixes the row count;
// subsequent columns must match it. Returns false on a length mismatch or
// duplicate name.
func (f *Frame) AddColumn(col Column) bool {
	if _, exists := f.byName[col.Name]; exists {
		return false
	}
	if len(f.columns) == 0 {
		f.rows = col.Len()
	} else if col.Len() != f.rows {
		return false
	}
	f.byName[col.Name] = len(f.columns)
	f.columns = append(f.columns, col)
	return true
}

// Column returns the named column, if present
func (f *Frame) Column(name string) (*Column, bool) {
	idx, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return &f.columns[idx], true
}

// HasColumn reports whether the named column exists
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// ColumnNames returns all column names in declaration order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// NumericColumns returns the names of all numeric columns in order
func (f *Frame) NumericColumns() []string {
	var names []string
	for _, col := range f.columns {
		if col.Type == TypeNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of all categorical columns in order
func (f *Frame) CategoricalColumns() []string {
	var names []string
	for _, col := range f.columns {
		if col.Type == TypeCategorical {
			names = append(names, col.Name)
		}
	}
	return names
}

// TimestampColumn returns the first timestamp column, if any
func (f *Frame) TimestampColumn() (*Column, bool) {
	for i := range f.columns {
		if f.columns[i].Type == TypeTimestamp {
			return &f.columns[i], true
		}
	}
	return nil, false
}

// NumericValues returns the value slice of a numeric column, if present.
// The returned slice aliases the frame's storage.
func (f *Frame) NumericValues(name string) ([]float64, bool) {
	col, ok := f.Column(name)
	if !ok || col.Type != TypeNumeric {
		return nil, false
	}
	return col.Values, true
}

// SetNumericValue overwrites a single cell in a numeric column
func (f *Frame) SetNumericValue(name string, row int, value float64) bool {
	col, ok := f.Column(name)
	if !ok || col.Type != TypeNumeric || row < 0 || row >= f.rows {
		return false
	}
	col.Values[row] = value
	return true
}

// DropRows returns a new frame containing only the rows where keep[i] is
// true, preserving the original row order and the full column set.
func (f *Frame) DropRows(keep []bool) *Frame {
	out := NewFrame(f.name)
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	for _, col := range f.columns {
		newCol := Column{Name: col.Name, Type: col.Type}
		switch col.Type {
		case TypeNumeric:
			newCol.Values = make([]float64, 0, kept)
			for i, v := range col.Values {
				if i < len(keep) && keep[i] {
					newCol.Values = append(newCol.Values, v)
				}
			}
		case TypeTimestamp:
			newCol.Times = make([]time.Time, 0, kept)
			for i, t := range col.Times {
				if i < len(keep) && keep[i] {
					newCol.Times = append(newCol.Times, t)
				}
			}
		default:
			newCol.Labels = make([]string, 0, kept)
			for i, l := range col.Labels {
				if i < len(keep) && keep[i] {
					newCol.Labels = append(newCol.Labels, l)
				}
			}
		}
		out.AddColumn(newCol)
	}
	return out
}

// SelectRows returns a new frame with only the listed row indices, in the
// order given. Out-of-range indices are skipped.
func (f *Frame) SelectRows(indices []int) *Frame {
	keep := make([]bool, f.rows)
	for _, idx := range indices {
		if idx >= 0 && idx < f.rows {
			keep[idx] = true
		}
	}
	return f.DropRows(keep)
}

// DuplicateRowCount counts rows whose rendered cell tuple occurs more than
// once; every occurrence after the first counts as a duplicate.
func (f *Frame) DuplicateRowCount() int {
	seen := make(map[string]bool, f.rows)
	duplicates := 0
	for i := 0; i < f.rows; i++ {
		key := f.rowKey(i)
		if seen[key] {
			duplicates++
		} else {
			seen[key] = true
		}
	}
	return duplicates
}

func (f *Frame) rowKey(row int) string {
	key := ""
	for _, col := range f.columns {
		switch col.Type {
		case TypeNumeric:
			v := col.Values[row]
			if math.IsNaN(v) {
				key += "\x00NaN"
			} else {
				key += "\x00" + formatFloat(v)
			}
		case TypeTimestamp:
			key += "\x00" + col.Times[row].Format(time.RFC3339Nano)
		default:
			key += "\x00" + col.Labels[row]
		}
	}
	return key
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
