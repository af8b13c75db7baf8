package woe

import (
	"sort"

	"gowoe/domain/core"
)

// Strength is the qualitative predictive-power label for a variable's
// Information Value. The thresholds are fixed domain convention.
type Strength string

const (
	StrengthSuspicious Strength = "Suspicious"
	StrengthVeryStrong Strength = "Very strong"
	StrengthStrong     Strength = "Strong"
	StrengthAverage    Strength = "Average"
	StrengthWeak       Strength = "Weak"
	StrengthVeryWeak   Strength = "Very weak"
)

// Classify maps an Information Value to its strength label. Bounds are
// inclusive below and exclusive above, first match wins.
func Classify(iv float64) Strength {
	switch {
	case iv >= 1.0:
		return StrengthSuspicious
	case iv >= 0.5:
		return StrengthVeryStrong
	case iv >= 0.2:
		return StrengthStrong
	case iv >= 0.1:
		return StrengthAverage
	case iv >= 0.02:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}

// SummaryRow rolls one variable's WOE table up into its Information
// Value, bin counts and strength classification. Derived entirely from
// the WOE table, never mutated afterward.
type SummaryRow struct {
	Variable         core.VariableKey `json:"variable"`
	InformationValue float64          `json:"information_value"`
	Bins             int              `json:"bins"`
	ZeroBins         int              `json:"zero_bins"`
	Strength         Strength         `json:"strength"`
}

// Summarize aggregates per-variable WOE tables into a ranked summary,
// sorted descending by Information Value. The sort is stable, so
// variables with equal IV keep their input order.
func Summarize(tables []*Table) []SummaryRow {
	rows := make([]SummaryRow, 0, len(tables))
	for _, t := range tables {
		iv := t.IV()
		rows = append(rows, SummaryRow{
			Variable:         t.Variable,
			InformationValue: iv,
			Bins:             len(t.Rows),
			ZeroBins:         t.DegenerateBins(),
			Strength:         Classify(iv),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].InformationValue > rows[j].InformationValue
	})
	return rows
}
