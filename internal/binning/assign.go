package binning

import (
	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/domain/woe"
)

// AssignCategorical maps each observation to its bin: the raw observed
// category, untransformed. The returned order is the declared category
// order when the column carries one, otherwise first-seen order.
func AssignCategorical(col *table.Column) (bins []string, order []string) {
	bins = append([]string(nil), col.Strings...)
	return bins, col.CategoryOrder()
}

// AssignByLeaf maps each observation to the label of the interval rule
// its leaf produced. Every observation must match exactly one rule; a
// miss means the fitted tree and the input table are inconsistent.
func AssignByLeaf(variable core.VariableKey, leaves []core.LeafID, set *woe.Set) ([]string, error) {
	bins := make([]string, len(leaves))
	for i, leaf := range leaves {
		rule, ok := set.ByLeaf(leaf)
		if !ok {
			return nil, core.NewBinAssignmentError(variable, i)
		}
		bins[i] = rule.Label
	}
	return bins, nil
}

// RuleOrder returns bin labels in ascending interval order, unbounded
// lower side first. Continuous WOE tables present bins in this order.
func RuleOrder(set *woe.Set) []string {
	sorted := set.SortedByMin()
	order := make([]string, len(sorted))
	for i, r := range sorted {
		order[i] = r.Label
	}
	return order
}
