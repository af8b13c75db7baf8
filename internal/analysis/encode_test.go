package analysis

import (
	"math"
	"testing"

	"gowoe/domain/table"
	"gowoe/domain/woe"
)

func fittedCategorical() *woe.Table {
	return &woe.Table{
		Variable: "city",
		Kind:     woe.KindCategorical,
		Rows: []woe.Row{
			{Bin: "A", Outcome0: 1, Outcome1: 1, WOE: -0.5},
			{Bin: "B", Outcome0: 5, Outcome1: 1, WOE: 0.3},
		},
	}
}

func fittedContinuous() *woe.Table {
	return &woe.Table{
		Variable: "amount",
		Kind:     woe.KindContinuous,
		Rows: []woe.Row{
			{Bin: "(;26)", Outcome0: 3, Outcome1: 1, WOE: 0.2},
			{Bin: "<26;)", Outcome0: 2, Outcome1: 2, WOE: -0.4},
		},
		Rules: &woe.Set{
			Variable: "amount",
			Rules: []woe.Rule{
				{Leaf: "n2", Min: math.Inf(-1), Max: 26, Label: "(;26)"},
				{Leaf: "n3", Min: 26, Max: math.Inf(1), MinClosed: true, Label: "<26;)"},
			},
		},
	}
}

func TestApplyEncodingCategorical(t *testing.T) {
	tbl := table.New()
	_ = tbl.AddCategorical("city", []string{"A", "B", "A"})

	encoded, err := ApplyEncoding(tbl, []*woe.Table{fittedCategorical()})
	if err != nil {
		t.Fatalf("ApplyEncoding failed: %v", err)
	}

	col, ok := encoded.Column("city_woe")
	if !ok {
		t.Fatal("expected city_woe column")
	}
	if col.Kind != table.KindNumeric {
		t.Errorf("expected numeric column, got %s", col.Kind)
	}
	want := []float64{-0.5, 0.3, -0.5}
	for i, w := range want {
		if col.Floats[i] != w {
			t.Errorf("row %d: expected %g, got %g", i, w, col.Floats[i])
		}
	}
}

func TestApplyEncodingContinuous(t *testing.T) {
	tbl := table.New()
	_ = tbl.AddNumeric("amount", []float64{10, 26, 100})

	encoded, err := ApplyEncoding(tbl, []*woe.Table{fittedContinuous()})
	if err != nil {
		t.Fatalf("ApplyEncoding failed: %v", err)
	}

	col, _ := encoded.Column("amount_woe")
	want := []float64{0.2, -0.4, -0.4}
	for i, w := range want {
		if col.Floats[i] != w {
			t.Errorf("row %d: expected %g, got %g", i, w, col.Floats[i])
		}
	}
}

// TestApplyEncodingUnmatched tests that out-of-vocabulary values keep 0
func TestApplyEncodingUnmatched(t *testing.T) {
	tbl := table.New()
	_ = tbl.AddCategorical("city", []string{"A", "Z"})

	encoded, err := ApplyEncoding(tbl, []*woe.Table{fittedCategorical()})
	if err != nil {
		t.Fatalf("ApplyEncoding failed: %v", err)
	}

	col, _ := encoded.Column("city_woe")
	if col.Floats[1] != 0 {
		t.Errorf("expected unmatched value to encode as 0, got %g", col.Floats[1])
	}
}

// TestApplyEncodingDoesNotMutateInput tests the clone-and-append
// contract
func TestApplyEncodingDoesNotMutateInput(t *testing.T) {
	tbl := table.New()
	_ = tbl.AddCategorical("city", []string{"A", "B"})

	if _, err := ApplyEncoding(tbl, []*woe.Table{fittedCategorical()}); err != nil {
		t.Fatalf("ApplyEncoding failed: %v", err)
	}
	if len(tbl.Columns) != 1 {
		t.Errorf("input table gained columns: %d", len(tbl.Columns))
	}
}

func TestApplyEncodingErrors(t *testing.T) {
	tbl := table.New()
	_ = tbl.AddNumeric("amount", []float64{1})

	// Variable missing from the table
	if _, err := ApplyEncoding(tbl, []*woe.Table{fittedCategorical()}); err == nil {
		t.Error("expected missing variable to fail")
	}

	// Kind mismatch: continuous fit applied to a categorical column
	catTbl := table.New()
	_ = catTbl.AddCategorical("amount", []string{"x"})
	if _, err := ApplyEncoding(catTbl, []*woe.Table{fittedContinuous()}); err == nil {
		t.Error("expected kind mismatch to fail")
	}

	// Continuous table without stored rules
	broken := fittedContinuous()
	broken.Rules = nil
	if _, err := ApplyEncoding(tbl, []*woe.Table{broken}); err == nil {
		t.Error("expected missing rules to fail")
	}
}
