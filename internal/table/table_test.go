package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestTable(t *testing.T, records ...Record) *Table {
	t.Helper()
	tbl, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, rec := range records {
		tbl.AppendRecord(rec)
	}
	return tbl
}

func rec(pairs ...string) Record {
	r := make(Record, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r = append(r, Field{Name: pairs[i], Cell: Text(pairs[i+1])})
	}
	return r
}

func values(t *testing.T, tbl *Table, column string) []Cell {
	t.Helper()
	cells, ok := tbl.Column(column)
	if !ok {
		t.Fatalf("column %q not found in %v", column, tbl.Columns())
	}
	return cells
}

func TestTable_AppendRecord(t *testing.T) {
	tbl := newTestTable(t,
		rec("D", "SSW", "W", "7", "$", "0"),
		rec("D", "S", "U", "1", "$", "180"),
	)

	wantCols := []string{"D", "W", "$", "U"}
	if diff := cmp.Diff(wantCols, tbl.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	wantW := []Cell{Text("7"), Missing}
	if diff := cmp.Diff(wantW, values(t, tbl, "W")); diff != "" {
		t.Errorf("W column mismatch (-want +got):\n%s", diff)
	}
	wantU := []Cell{Missing, Text("1")}
	if diff := cmp.Diff(wantU, values(t, tbl, "U")); diff != "" {
		t.Errorf("U column mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_DuplicateColumn(t *testing.T) {
	if _, err := New("a", "b", "a"); err == nil {
		t.Fatal("New() expected error for duplicate column, got nil")
	}
}

func TestTable_AppendRecord_RepeatedName(t *testing.T) {
	tbl := newTestTable(t, rec("W", "7", "W", "8"))

	if diff := cmp.Diff([]string{"W"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Cell{Text("8")}, values(t, tbl, "W")); diff != "" {
		t.Errorf("W column mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_AppendRow(t *testing.T) {
	tbl, err := New("D", "W")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := tbl.AppendRow([]Cell{Text("N"), Missing}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if err := tbl.AppendRow([]Cell{Text("S")}); err == nil {
		t.Error("AppendRow() with too few cells expected error, got nil")
	}

	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	if diff := cmp.Diff([]Cell{Text("N"), Missing}, tbl.Row(0)); diff != "" {
		t.Errorf("Row(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := newTestTable(t, rec("D", "N"))
	clone := tbl.Clone()

	clone.AppendRecord(rec("D", "S", "W", "1"))

	if tbl.Len() != 1 || tbl.HasColumn("W") {
		t.Errorf("original changed after clone append: len %d, columns %v", tbl.Len(), tbl.Columns())
	}
	if clone.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", clone.Len())
	}
}

func TestCell_String(t *testing.T) {
	if got := Text("7").String(); got != "7" {
		t.Errorf("Text(%q).String() = %q", "7", got)
	}
	if got := Missing.String(); got != "" {
		t.Errorf("Missing.String() = %q, want empty", got)
	}
	if _, ok := newTestTable(t).Column("W"); ok {
		t.Error("Column() on an empty table reported ok")
	}
}
