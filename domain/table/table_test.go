package table

import (
	"testing"
)

func TestTableAddAndLookup(t *testing.T) {
	tbl := New()
	if err := tbl.AddNumeric("amount", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddCategorical("city", []string{"A", "B", "A"}); err != nil {
		t.Fatalf("AddCategorical failed: %v", err)
	}

	if tbl.RowCount() != 3 {
		t.Errorf("expected 3 rows, got %d", tbl.RowCount())
	}

	col, ok := tbl.Column("city")
	if !ok {
		t.Fatal("expected city column to exist")
	}
	if col.Kind != KindCategorical {
		t.Errorf("expected categorical kind, got %s", col.Kind)
	}

	if _, ok := tbl.Column("missing"); ok {
		t.Error("expected missing column lookup to fail")
	}
}

func TestTableRejectsLengthMismatch(t *testing.T) {
	tbl := New()
	if err := tbl.AddNumeric("a", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddNumeric("b", []float64{1, 2}); err == nil {
		t.Error("expected length mismatch to be rejected")
	}
}

func TestTableRejectsDuplicateColumn(t *testing.T) {
	tbl := New()
	if err := tbl.AddNumeric("a", []float64{1}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddCategorical("a", []string{"x"}); err == nil {
		t.Error("expected duplicate column to be rejected")
	}
}

// TestCategoricalKeys tests the default analysis scope: categorical
// columns only, outcome excluded
func TestCategoricalKeys(t *testing.T) {
	tbl := New()
	_ = tbl.AddCategorical("city", []string{"A"})
	_ = tbl.AddNumeric("amount", []float64{10})
	_ = tbl.AddCategorical("channel", []string{"web"})
	_ = tbl.AddCategorical("outcome", []string{"good"})

	keys := tbl.CategoricalKeys("outcome")
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
	if keys[0] != "city" || keys[1] != "channel" {
		t.Errorf("expected [city channel], got %v", keys)
	}
}

func TestCategoryOrderDeclaredLevels(t *testing.T) {
	col := &Column{
		Kind:    KindCategorical,
		Strings: []string{"B", "A", "C"},
		Levels:  []string{"A", "B", "C"},
	}
	order := col.CategoryOrder()
	if len(order) != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Errorf("expected declared order [A B C], got %v", order)
	}
}

func TestCategoryOrderFirstSeen(t *testing.T) {
	col := &Column{
		Kind:    KindCategorical,
		Strings: []string{"B", "A", "B", "C", "A"},
	}
	order := col.CategoryOrder()
	if len(order) != 3 || order[0] != "B" || order[1] != "A" || order[2] != "C" {
		t.Errorf("expected first-seen order [B A C], got %v", order)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := New()
	_ = tbl.AddNumeric("a", []float64{1, 2})

	clone := tbl.Clone()
	clone.Columns[0].Floats[0] = 99
	if tbl.Columns[0].Floats[0] != 1 {
		t.Error("mutating the clone changed the original")
	}

	if err := clone.AddNumeric("b", []float64{3, 4}); err != nil {
		t.Fatalf("AddNumeric on clone failed: %v", err)
	}
	if len(tbl.Columns) != 1 {
		t.Error("appending to the clone changed the original")
	}
}
