package table

import (
	"fmt"
	"strings"
)

// HeadingMap maps provider column codes to human-readable column names
type HeadingMap map[string]string

// CategoryMap maps a raw categorical value to its replacement label
type CategoryMap map[string]string

// Mode controls how RemapCategory treats values absent from the category map
type Mode int

const (
	// Lenient replaces unknown values with a missing cell
	Lenient Mode = iota
	// Strict fails on the first unknown value
	Strict
)

var modeNames = map[Mode]string{
	Lenient: "lenient",
	Strict:  "strict",
}

// String returns the mode name
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", int(m))
}

// ParseMode converts "lenient" or "strict" to a Mode
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return Lenient, fmt.Errorf("unknown remap mode %q (want lenient or strict)", s)
}

// UnknownCategoryError is returned by a strict remap when a cell has no entry
// in the category map. Missing cells are reported with an empty Value.
type UnknownCategoryError struct {
	Column string
	Row    int
	Value  string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q in column %q at row %d", e.Value, e.Column, e.Row)
}

// ColumnNotFoundError is returned when a transform targets an absent column
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// Rename renames every column listed in headings at once. A rename whose
// target would duplicate another column name is skipped.
func Rename(t *Table, headings HeadingMap) *Table {
	out := t.Clone()

	names := make([]string, len(out.columns))
	for i, c := range out.columns {
		if to, ok := headings[c]; ok {
			names[i] = to
		} else {
			names[i] = c
		}
	}

	// Reverting one collision can expose another, so repeat until stable.
	for {
		counts := make(map[string]int, len(names))
		for _, n := range names {
			counts[n]++
		}
		reverted := false
		for i, n := range names {
			if counts[n] > 1 && n != out.columns[i] {
				names[i] = out.columns[i]
				reverted = true
			}
		}
		if !reverted {
			break
		}
	}

	data := make(map[string][]Cell, len(names))
	for i, c := range out.columns {
		data[names[i]] = out.data[c]
	}
	out.columns = names
	out.data = data
	return out
}

// DropColumn removes the named column if present
func DropColumn(t *Table, name string) *Table {
	out := t.Clone()
	if _, ok := out.data[name]; !ok {
		return out
	}

	delete(out.data, name)
	cols := out.columns[:0]
	for _, c := range out.columns {
		if c != name {
			cols = append(cols, c)
		}
	}
	out.columns = cols
	return out
}

// RemapCategory replaces every value in column with its entry in categories
func RemapCategory(t *Table, column string, categories CategoryMap, mode Mode) (*Table, error) {
	cells, ok := t.data[column]
	if !ok {
		return nil, &ColumnNotFoundError{Column: column}
	}

	mapped := make([]Cell, len(cells))
	for i, c := range cells {
		label, known := categories[c.Value]
		if c.Present && known {
			mapped[i] = Text(label)
			continue
		}
		if mode == Strict {
			return nil, &UnknownCategoryError{Column: column, Row: i, Value: c.Value}
		}
		mapped[i] = Missing
	}

	out := t.Clone()
	out.data[column] = mapped
	return out, nil
}
