// Package table holds the in-memory forecast table and the pure transforms
// applied to it before persistence.
package table

import (
	"fmt"
	"slices"
)

// Cell is a single table value. A cell with Present set to false is missing.
type Cell struct {
	Value   string
	Present bool
}

// Text returns a present cell holding s
func Text(s string) Cell {
	return Cell{Value: s, Present: true}
}

// Missing is the marker for an absent or unmapped value
var Missing = Cell{}

// String returns the cell value, or an empty string when missing
func (c Cell) String() string {
	if !c.Present {
		return ""
	}
	return c.Value
}

// Field is one named value of a Record
type Field struct {
	Name string
	Cell Cell
}

// Record is an ordered set of fields describing one observation
type Record []Field

// Table is a column-oriented table. Columns keep the order in which they were
// first observed and every column holds exactly Len() cells.
type Table struct {
	columns []string
	data    map[string][]Cell
	rows    int
}

// New creates an empty table with the given columns
func New(columns ...string) (*Table, error) {
	t := &Table{data: make(map[string][]Cell, len(columns))}
	for _, c := range columns {
		if _, exists := t.data[c]; exists {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.columns = append(t.columns, c)
		t.data[c] = nil
	}
	return t, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.rows
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns a copy of the named column's cells
func (t *Table) Column(name string) ([]Cell, bool) {
	cells, ok := t.data[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(cells), true
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, c := range t.columns {
		row[j] = t.data[c][i]
	}
	return row
}

// AppendRecord adds one row. Fields naming an unseen column add that column,
// padded with missing cells for earlier rows. Columns the record lacks are
// filled with missing cells. When a record repeats a name the last value wins.
func (t *Table) AppendRecord(rec Record) {
	if t.data == nil {
		t.data = make(map[string][]Cell)
	}

	for _, f := range rec {
		if _, ok := t.data[f.Name]; !ok {
			t.columns = append(t.columns, f.Name)
			t.data[f.Name] = make([]Cell, t.rows, t.rows+1)
		}
	}

	for _, c := range t.columns {
		t.data[c] = append(t.data[c], Missing)
	}
	for _, f := range rec {
		t.data[f.Name][t.rows] = f.Cell
	}
	t.rows++
}

// AppendRow adds one row whose cells are given in column order
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	for j, c := range t.columns {
		t.data[c] = append(t.data[c], cells[j])
	}
	t.rows++
	return nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{
		columns: slices.Clone(t.columns),
		data:    make(map[string][]Cell, len(t.data)),
		rows:    t.rows,
	}
	for name, cells := range t.data {
		out.data[name] = slices.Clone(cells)
	}
	return out
}
