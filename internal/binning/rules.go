// Package binning translates fitted split-tree leaves into interval
// rules and maps observations onto bins.
package binning

import (
	"math"

	"gowoe/domain/core"
	"gowoe/domain/woe"
	"gowoe/ports"
)

// LeafPath pairs a leaf with its decision path. Paths arrive in the
// learner's leaf order; rules keep that order so observations can join
// by node identity.
type LeafPath struct {
	Leaf       core.LeafID
	Conditions []ports.SplitCondition
}

// ParseRules turns leaf decision paths into a canonical rule set: per
// leaf, the tightest lower bound (maximum of all >=/> thresholds) and
// the tightest upper bound (minimum of all <=/< thresholds), with
// inclusivity taken from the winning conjunct. A side with no conjunct
// stays unbounded. A leaf with no numeric conjuncts on the variable at
// all is a malformed rule (degenerate tree).
func ParseRules(variable core.VariableKey, paths []LeafPath) (*woe.Set, error) {
	set := &woe.Set{Variable: variable}
	for _, p := range paths {
		rule, err := parseLeaf(variable, p)
		if err != nil {
			return nil, err
		}
		set.Rules = append(set.Rules, rule)
	}
	return set, nil
}

func parseLeaf(variable core.VariableKey, p LeafPath) (woe.Rule, error) {
	rule := woe.Rule{
		Leaf: p.Leaf,
		Min:  math.Inf(-1),
		Max:  math.Inf(1),
	}
	conjuncts := 0
	for _, c := range p.Conditions {
		if c.Variable != variable {
			continue
		}
		switch c.Comparator {
		case ports.CompGE, ports.CompGT:
			conjuncts++
			inclusive := c.Comparator == ports.CompGE
			if c.Threshold > rule.Min {
				rule.Min = c.Threshold
				rule.MinClosed = inclusive
			} else if c.Threshold == rule.Min && !inclusive {
				// x > t is tighter than x >= t at the same threshold
				rule.MinClosed = false
			}
		case ports.CompLE, ports.CompLT:
			conjuncts++
			inclusive := c.Comparator == ports.CompLE
			if c.Threshold < rule.Max {
				rule.Max = c.Threshold
				rule.MaxClosed = inclusive
			} else if c.Threshold == rule.Max && !inclusive {
				rule.MaxClosed = false
			}
		}
	}
	if conjuncts == 0 {
		return woe.Rule{}, core.NewMalformedRuleError(p.Leaf)
	}
	rule.Label = rule.FormatLabel()
	rule.Predicate = rule.FormatPredicate(variable)
	return rule, nil
}

// RulesFromTree extracts each leaf's path from a fitted tree and parses
// it into the variable's rule set.
func RulesFromTree(variable core.VariableKey, tree ports.FittedTree) (*woe.Set, error) {
	leaves := tree.Leaves()
	paths := make([]LeafPath, 0, len(leaves))
	for _, leaf := range leaves {
		conditions, ok := tree.Path(leaf)
		if !ok {
			return nil, core.NewMalformedRuleError(leaf)
		}
		paths = append(paths, LeafPath{Leaf: leaf, Conditions: conditions})
	}
	return ParseRules(variable, paths)
}
