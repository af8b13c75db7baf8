package binning

import (
	"errors"
	"math"
	"testing"

	"gowoe/domain/core"
	"gowoe/ports"
)

func cond(cmp ports.Comparator, threshold float64) ports.SplitCondition {
	return ports.SplitCondition{Variable: "amount", Comparator: cmp, Threshold: threshold}
}

// TestParseRulesBounds tests per-leaf bound extraction: tightest lower
// and upper bound with inclusivity from the winning conjunct
func TestParseRulesBounds(t *testing.T) {
	paths := []LeafPath{
		{Leaf: "n4", Conditions: []ports.SplitCondition{cond(ports.CompLT, 40), cond(ports.CompLT, 26)}},
		{Leaf: "n5", Conditions: []ports.SplitCondition{cond(ports.CompLT, 40), cond(ports.CompGE, 26)}},
		{Leaf: "n3", Conditions: []ports.SplitCondition{cond(ports.CompGE, 40)}},
	}

	set, err := ParseRules("amount", paths)
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	if len(set.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(set.Rules))
	}

	first, _ := set.ByLeaf("n4")
	if !math.IsInf(first.Min, -1) || first.Max != 26 || first.MaxClosed {
		t.Errorf("n4: expected (-inf, 26), got [%g, %g] closed=%v/%v",
			first.Min, first.Max, first.MinClosed, first.MaxClosed)
	}
	if first.Label != "(;26)" {
		t.Errorf("n4: expected label (;26), got %q", first.Label)
	}

	mid, _ := set.ByLeaf("n5")
	if mid.Min != 26 || !mid.MinClosed || mid.Max != 40 || mid.MaxClosed {
		t.Errorf("n5: expected [26, 40), got [%g, %g] closed=%v/%v",
			mid.Min, mid.Max, mid.MinClosed, mid.MaxClosed)
	}
	if mid.Predicate != "amount >= 26 AND amount < 40" {
		t.Errorf("n5: unexpected predicate %q", mid.Predicate)
	}

	last, _ := set.ByLeaf("n3")
	if last.Min != 40 || !last.MinClosed || !math.IsInf(last.Max, 1) {
		t.Errorf("n3: expected [40, +inf), got [%g, %g]", last.Min, last.Max)
	}
}

// TestParseRulesTightestBound tests that the maximum of the lower
// thresholds and the minimum of the upper thresholds win
func TestParseRulesTightestBound(t *testing.T) {
	paths := []LeafPath{
		{Leaf: "n8", Conditions: []ports.SplitCondition{
			cond(ports.CompGE, 10),
			cond(ports.CompGE, 20), // tighter lower bound
			cond(ports.CompLT, 50),
			cond(ports.CompLT, 35), // tighter upper bound
		}},
	}

	set, err := ParseRules("amount", paths)
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	rule := set.Rules[0]
	if rule.Min != 20 || rule.Max != 35 {
		t.Errorf("expected [20, 35), got [%g, %g]", rule.Min, rule.Max)
	}
}

// TestParseRulesExclusiveWinsTie tests the equal-threshold tie-break:
// the strict comparator takes precedence on both sides
func TestParseRulesExclusiveWinsTie(t *testing.T) {
	paths := []LeafPath{
		{Leaf: "n2", Conditions: []ports.SplitCondition{
			cond(ports.CompGE, 10),
			cond(ports.CompGT, 10),
			cond(ports.CompLE, 30),
			cond(ports.CompLT, 30),
		}},
	}

	set, err := ParseRules("amount", paths)
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	rule := set.Rules[0]
	if rule.MinClosed {
		t.Error("expected exclusive lower bound to win the tie")
	}
	if rule.MaxClosed {
		t.Error("expected exclusive upper bound to win the tie")
	}
	if rule.Label != "(10;30)" {
		t.Errorf("expected label (10;30), got %q", rule.Label)
	}
}

// TestParseRulesOrderingIndependent tests that conjunct arrival order
// does not change the result
func TestParseRulesOrderingIndependent(t *testing.T) {
	forward := []ports.SplitCondition{cond(ports.CompGE, 10), cond(ports.CompGE, 20), cond(ports.CompLT, 35)}
	backward := []ports.SplitCondition{cond(ports.CompLT, 35), cond(ports.CompGE, 20), cond(ports.CompGE, 10)}

	a, err := ParseRules("amount", []LeafPath{{Leaf: "n1", Conditions: forward}})
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	b, err := ParseRules("amount", []LeafPath{{Leaf: "n1", Conditions: backward}})
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	if a.Rules[0] != b.Rules[0] {
		t.Errorf("conjunct order changed the rule: %+v vs %+v", a.Rules[0], b.Rules[0])
	}
}

// TestParseRulesMalformed tests that a leaf with no usable conjunct on
// the variable is rejected
func TestParseRulesMalformed(t *testing.T) {
	paths := []LeafPath{
		{Leaf: "n1", Conditions: nil},
	}
	_, err := ParseRules("amount", paths)
	if err == nil {
		t.Fatal("expected malformed rule error")
	}
	if !errors.Is(err, core.ErrMalformedRule) {
		t.Errorf("expected ErrMalformedRule, got %v", err)
	}

	// Conjuncts on another variable do not count either
	other := []LeafPath{
		{Leaf: "n1", Conditions: []ports.SplitCondition{
			{Variable: "age", Comparator: ports.CompLT, Threshold: 30},
		}},
	}
	if _, err := ParseRules("amount", other); !errors.Is(err, core.ErrMalformedRule) {
		t.Errorf("expected ErrMalformedRule for foreign conjuncts, got %v", err)
	}
}

// TestParseRulesPartition tests that a full leaf set produces a valid
// partition of the real line
func TestParseRulesPartition(t *testing.T) {
	paths := []LeafPath{
		{Leaf: "n4", Conditions: []ports.SplitCondition{cond(ports.CompLT, 40), cond(ports.CompLT, 26)}},
		{Leaf: "n5", Conditions: []ports.SplitCondition{cond(ports.CompLT, 40), cond(ports.CompGE, 26)}},
		{Leaf: "n3", Conditions: []ports.SplitCondition{cond(ports.CompGE, 40)}},
	}
	set, err := ParseRules("amount", paths)
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	if err := set.Validate(); err != nil {
		t.Errorf("expected valid partition, got %v", err)
	}

	// Every probe value must fall into exactly one rule
	probes := []float64{-100, 25.99, 26, 39.99, 40, 1000}
	for _, v := range probes {
		matches := 0
		for _, r := range set.Rules {
			if r.Contains(v) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("value %g matched %d rules, expected exactly 1", v, matches)
		}
	}
}
