// Package analysis implements the WOE/IV statistics engine: grouping
// bin assignments against the normalized outcome and deriving the
// per-bin weight-of-evidence statistics.
package analysis

import (
	"fmt"
	"math"

	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/domain/woe"
)

type binCounts struct {
	good, bad int
}

// Compute groups observations by bin and derives each bin's WOE row:
// outcome counts, class percentages, odds = pct0/pct1, woe = ln(odds)
// and miv = (pct0 - pct1) * woe.
//
// Degenerate bins (zero count of one class) would produce infinite or
// undefined WOE; those bins are substituted with odds=1, woe=0, miv=0
// and a DEGENERATE_BIN warning is attached to the table. The variable's
// total IV is the plain sum of miv and is never clipped.
//
// order, when given, fixes the bin presentation order; bins not listed
// there (and all bins when order is nil) appear in first-seen order.
func Compute(variable core.VariableKey, kind woe.VariableKind, bins []string, order []string, outcome *table.Outcome) (*woe.Table, error) {
	if len(bins) != len(outcome.Values) {
		return nil, fmt.Errorf("%w: %d bin assignments for %d outcomes",
			core.ErrInvalidInput, len(bins), len(outcome.Values))
	}
	if len(bins) == 0 {
		return nil, core.ErrEmptyTable
	}

	grouped := make(map[string]*binCounts, 8)
	var firstSeen []string
	for i, bin := range bins {
		c, ok := grouped[bin]
		if !ok {
			c = &binCounts{}
			grouped[bin] = c
			firstSeen = append(firstSeen, bin)
		}
		if outcome.Values[i] == 1 {
			c.bad++
		} else {
			c.good++
		}
	}

	totalGood, totalBad := outcome.Totals()

	result := &woe.Table{
		Variable:  variable,
		Kind:      kind,
		CreatedAt: core.Now(),
	}
	for _, bin := range binOrder(order, firstSeen, grouped) {
		c := grouped[bin]
		row := woe.Row{
			Variable: variable,
			Bin:      bin,
			Outcome0: c.good,
			Outcome1: c.bad,
			Pct0:     float64(c.good) / float64(totalGood),
			Pct1:     float64(c.bad) / float64(totalBad),
		}
		if c.good == 0 || c.bad == 0 {
			// WOE is undefined here; substitute neutral values so the
			// variable's IV stays finite, and surface the bin.
			row.Odds = 1
			row.WOE = 0
			row.MIV = 0
			result.Warnings = append(result.Warnings, woe.Warning{
				Code:     woe.WarningDegenerateBin,
				Variable: variable,
				Bin:      bin,
				Message: fmt.Sprintf("bin %q has outcome_0=%d outcome_1=%d; woe substituted with 0",
					bin, c.good, c.bad),
			})
		} else {
			row.Odds = row.Pct0 / row.Pct1
			row.WOE = math.Log(row.Odds)
			row.MIV = (row.Pct0 - row.Pct1) * row.WOE
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// binOrder merges the declared order with the bins actually observed:
// declared bins first (skipping unobserved ones), then any remaining
// bins in first-seen order.
func binOrder(declared, firstSeen []string, grouped map[string]*binCounts) []string {
	if len(declared) == 0 {
		return firstSeen
	}
	used := make(map[string]bool, len(grouped))
	var out []string
	for _, bin := range declared {
		if _, ok := grouped[bin]; ok && !used[bin] {
			used[bin] = true
			out = append(out, bin)
		}
	}
	for _, bin := range firstSeen {
		if !used[bin] {
			used[bin] = true
			out = append(out, bin)
		}
	}
	return out
}
