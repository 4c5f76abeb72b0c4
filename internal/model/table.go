package model

import "fmt"

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	DType  DType
	Values []Value
}

// HasNulls reports whether any cell in the column is null.
func (c *Column) HasNulls() bool {
	for _, v := range c.Values {
		if v.Null {
			return true
		}
	}
	return false
}

// Table is a loaded data set: an identifier column (Index) whose name may be
// empty, followed by ordered data columns of equal length.
type Table struct {
	Source  string
	Index   Column
	Columns []Column
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Index.Values)
}

// Headers returns the full header line: index name (possibly empty) followed
// by the data column names.
func (t *Table) Headers() []string {
	h := make([]string, 0, len(t.Columns)+1)
	h = append(h, t.Index.Name)
	for _, c := range t.Columns {
		h = append(h, c.Name)
	}
	return h
}

// DTypes returns the data column dtypes in order. The index dtype is not included.
func (t *Table) DTypes() []DType {
	d := make([]DType, len(t.Columns))
	for i, c := range t.Columns {
		d[i] = c.DType
	}
	return d
}

// Column returns the data column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// HasNulls reports whether any data or index cell is null.
func (t *Table) HasNulls() bool {
	if t.Index.HasNulls() {
		return true
	}
	for i := range t.Columns {
		if t.Columns[i].HasNulls() {
			return true
		}
	}
	return false
}

// NullRowIDs returns the identifier of every row holding at least one null
// cell (index included), in row order.
func (t *Table) NullRowIDs() []Value {
	var ids []Value
	for row, id := range t.Index.Values {
		if id.Null || t.rowHasNull(row) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (t *Table) rowHasNull(row int) bool {
	for i := range t.Columns {
		if t.Columns[i].Values[row].Null {
			return true
		}
	}
	return false
}

// Check verifies the structural invariants every loaded table must satisfy.
func (t *Table) Check() error {
	n := len(t.Index.Values)
	for _, c := range t.Columns {
		if len(c.Values) != n {
			return fmt.Errorf("table %s: column %q has %d values, index has %d", t.Source, c.Name, len(c.Values), n)
		}
	}
	return nil
}
