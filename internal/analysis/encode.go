package analysis

import (
	"fmt"

	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/domain/woe"
)

// ApplyEncoding substitutes each observation's bin with its WOE value:
// one new numeric column "<variable>_woe" per fitted table, appended to
// a clone of the input. Categorical variables match on raw value,
// continuous variables on interval containment through the stored rule
// set. Rows matching no bin get WOE 0. This is a pure lookup; nothing
// is refitted and the input table is never mutated.
func ApplyEncoding(tbl *table.Table, fitted []*woe.Table) (*table.Table, error) {
	out := tbl.Clone()
	for _, ft := range fitted {
		col, ok := out.Column(ft.Variable)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrVariableNotFound, ft.Variable)
		}
		encoded, err := encodeColumn(col, ft)
		if err != nil {
			return nil, err
		}
		name := core.VariableKey(ft.Variable.String() + "_woe")
		if err := out.AddNumeric(name, encoded); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func encodeColumn(col *table.Column, ft *woe.Table) ([]float64, error) {
	switch ft.Kind {
	case woe.KindCategorical:
		if col.Kind != table.KindCategorical {
			return nil, fmt.Errorf("%w: %s fitted as categorical but column is %s",
				core.ErrInvalidInput, ft.Variable, col.Kind)
		}
		values := make([]float64, len(col.Strings))
		for i, v := range col.Strings {
			if w, ok := ft.WOEFor(v); ok {
				values[i] = w
			}
		}
		return values, nil
	case woe.KindContinuous:
		if col.Kind != table.KindNumeric {
			return nil, fmt.Errorf("%w: %s fitted as continuous but column is %s",
				core.ErrInvalidInput, ft.Variable, col.Kind)
		}
		if ft.Rules == nil {
			return nil, fmt.Errorf("%w: %s has no stored rules", core.ErrInvalidInput, ft.Variable)
		}
		values := make([]float64, len(col.Floats))
		for i, v := range col.Floats {
			rule, ok := ft.Rules.Match(v)
			if !ok {
				continue // outside all observed leaf ranges, keep 0
			}
			if w, ok := ft.WOEFor(rule.Label); ok {
				values[i] = w
			}
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: unknown variable kind %q", core.ErrInvalidInput, ft.Kind)
	}
}
