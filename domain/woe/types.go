package woe

import (
	"fmt"
	"strings"

	"gowoe/domain/core"
)

// VariableKind tags which binning path produced a WOE table
type VariableKind string

const (
	KindCategorical VariableKind = "categorical"
	KindContinuous  VariableKind = "continuous"
)

// Row holds one bin's statistics. Invariant: across all rows of one
// variable, Pct0 sums to 1 and Pct1 sums to 1.
type Row struct {
	Variable core.VariableKey `json:"variable"`
	Bin      string           `json:"bin"`
	Outcome0 int              `json:"outcome_0"`
	Outcome1 int              `json:"outcome_1"`
	Pct0     float64          `json:"pct_0"`
	Pct1     float64          `json:"pct_1"`
	Odds     float64          `json:"odds"`
	WOE      float64          `json:"woe"`
	MIV      float64          `json:"miv"`
	// Predicate is the reusable interval expression for continuous
	// bins; empty for categorical bins.
	Predicate string `json:"predicate,omitempty"`
}

// IsDegenerate reports whether the bin has zero observations of one
// outcome class, making WOE mathematically undefined.
func (r Row) IsDegenerate() bool {
	return r.Outcome0 == 0 || r.Outcome1 == 0
}

// WarningCode represents structured warning types
type WarningCode string

const (
	// WarningDegenerateBin flags a bin whose WOE was substituted
	// because one outcome class has zero count.
	WarningDegenerateBin WarningCode = "DEGENERATE_BIN"
)

// Warning is a non-fatal signal attached to a WOE table
type Warning struct {
	Code     WarningCode      `json:"code"`
	Variable core.VariableKey `json:"variable"`
	Bin      string           `json:"bin"`
	Message  string           `json:"message"`
}

// Table is the ordered WOE statistics for one variable, plus the rule
// metadata needed to re-apply continuous bins to new data. Tables are
// produced once and never mutated after construction.
type Table struct {
	Variable  core.VariableKey `json:"variable"`
	Kind      VariableKind     `json:"kind"`
	Rows      []Row            `json:"rows"`
	Rules     *Set             `json:"rules,omitempty"` // continuous variables only
	Warnings  []Warning        `json:"warnings,omitempty"`
	CreatedAt core.Timestamp   `json:"created_at"`
}

// IV returns the variable's total Information Value: the sum of MIV
// over all bins, never clipped.
func (t *Table) IV() float64 {
	total := 0.0
	for _, r := range t.Rows {
		total += r.MIV
	}
	return total
}

// DegenerateBins counts bins with zero observations of either class
func (t *Table) DegenerateBins() int {
	n := 0
	for _, r := range t.Rows {
		if r.IsDegenerate() {
			n++
		}
	}
	return n
}

// WOEFor returns the WOE value for the given bin identifier
func (t *Table) WOEFor(bin string) (float64, bool) {
	for _, r := range t.Rows {
		if r.Bin == bin {
			return r.WOE, true
		}
	}
	return 0, false
}

// Fingerprint returns a deterministic hash over the table's bins and
// statistics. Two runs over identical input produce equal fingerprints.
func (t *Table) Fingerprint() core.Hash {
	var b strings.Builder
	b.WriteString(t.Variable.String())
	b.WriteString(string(t.Kind))
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "|%s:%d:%d:%.17g:%.17g:%.17g", r.Bin, r.Outcome0, r.Outcome1, r.Pct0, r.Pct1, r.WOE)
	}
	return core.NewHash([]byte(b.String()))
}
