package testkit

import (
	"testing"

	"gowoe/domain/table"
)

func TestCreditDataGeneratorBasic(t *testing.T) {
	gen := NewCreditDataGenerator(DefaultCreditConfig())
	tbl := gen.Generate()

	if err := tbl.Validate(); err != nil {
		t.Fatalf("generated table is invalid: %v", err)
	}
	if tbl.RowCount() != 1000 {
		t.Errorf("expected 1000 rows, got %d", tbl.RowCount())
	}

	outcome, ok := tbl.Column("outcome")
	if !ok {
		t.Fatal("expected outcome column")
	}
	normalized, err := table.NormalizeOutcome(outcome)
	if err != nil {
		t.Fatalf("outcome column does not normalize: %v", err)
	}
	good, bad := normalized.Totals()
	if good == 0 || bad == 0 {
		t.Errorf("expected both classes present, got %d good / %d bad", good, bad)
	}

	// Default scope must see exactly the three categorical predictors
	keys := tbl.CategoricalKeys("outcome")
	if len(keys) != 3 {
		t.Errorf("expected 3 categorical predictors, got %v", keys)
	}
}

// TestCreditDataGeneratorDeterministic tests seed-stable generation
func TestCreditDataGeneratorDeterministic(t *testing.T) {
	config := CreditGeneratorConfig{Rows: 200, Seed: 7}

	a := NewCreditDataGenerator(config).Generate()
	b := NewCreditDataGenerator(config).Generate()

	colA, _ := a.Column("checking_status")
	colB, _ := b.Column("checking_status")
	for i := range colA.Strings {
		if colA.Strings[i] != colB.Strings[i] {
			t.Fatalf("row %d differs between identical seeds", i)
		}
	}

	amtA, _ := a.Column("credit_amount")
	amtB, _ := b.Column("credit_amount")
	for i := range amtA.Floats {
		if amtA.Floats[i] != amtB.Floats[i] {
			t.Fatalf("amount %d differs between identical seeds", i)
		}
	}
}

func TestCreditDataGeneratorSeedChangesData(t *testing.T) {
	a := NewCreditDataGenerator(CreditGeneratorConfig{Rows: 200, Seed: 1}).Generate()
	b := NewCreditDataGenerator(CreditGeneratorConfig{Rows: 200, Seed: 2}).Generate()

	colA, _ := a.Column("credit_amount")
	colB, _ := b.Column("credit_amount")
	same := true
	for i := range colA.Floats {
		if colA.Floats[i] != colB.Floats[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical data")
	}
}
