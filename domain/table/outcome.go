package table

import (
	"fmt"
	"sort"

	"gowoe/domain/core"
)

// Outcome is the normalized {0 = good, 1 = bad} view of a binary
// outcome column. All WOE statistics are computed against this view.
type Outcome struct {
	Values []int
	// Mapping records the observed value (as written in the column)
	// for each normalized class.
	GoodLabel string
	BadLabel  string
}

// Totals returns the table-wide counts of outcome 0 and outcome 1
func (o *Outcome) Totals() (good int, bad int) {
	for _, v := range o.Values {
		if v == 1 {
			bad++
		} else {
			good++
		}
	}
	return good, bad
}

// NormalizeOutcome canonicalizes a binary outcome column. Rules, in
// priority order:
//
//  1. categorical with label set exactly {good, bad}: bad maps to 1
//  2. numeric with distinct values exactly {0, 1}: identity
//  3. any other two-level categorical: the lexicographically-second
//     level maps to 1
//
// Anything else is an invalid outcome.
func NormalizeOutcome(col *Column) (*Outcome, error) {
	switch col.Kind {
	case KindCategorical:
		return normalizeCategorical(col)
	case KindNumeric:
		return normalizeNumeric(col)
	default:
		return nil, core.NewInvalidOutcomeError(fmt.Sprintf("unsupported column kind %q", col.Kind))
	}
}

func normalizeCategorical(col *Column) (*Outcome, error) {
	distinct := col.DistinctValues()
	if len(distinct) != 2 {
		return nil, core.NewInvalidOutcomeError(
			fmt.Sprintf("column %s has %d distinct values, need exactly 2", col.Name, len(distinct)))
	}

	good, bad := distinct[0], distinct[1]
	if (good == "good" && bad == "bad") || (good == "bad" && bad == "good") {
		good, bad = "good", "bad"
	} else {
		// Lexicographically-second level is the event of interest
		if good > bad {
			good, bad = bad, good
		}
	}

	values := make([]int, len(col.Strings))
	for i, v := range col.Strings {
		if v == bad {
			values[i] = 1
		}
	}
	return &Outcome{Values: values, GoodLabel: good, BadLabel: bad}, nil
}

func normalizeNumeric(col *Column) (*Outcome, error) {
	distinct := make(map[float64]bool, 2)
	for _, v := range col.Floats {
		distinct[v] = true
	}
	if len(distinct) != 2 || !distinct[0] || !distinct[1] {
		keys := make([]float64, 0, len(distinct))
		for k := range distinct {
			keys = append(keys, k)
		}
		sort.Float64s(keys)
		return nil, core.NewInvalidOutcomeError(
			fmt.Sprintf("numeric column %s has distinct values %v, need exactly {0, 1}", col.Name, keys))
	}

	values := make([]int, len(col.Floats))
	for i, v := range col.Floats {
		if v == 1 {
			values[i] = 1
		}
	}
	return &Outcome{Values: values, GoodLabel: "0", BadLabel: "1"}, nil
}
