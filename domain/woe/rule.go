package woe

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gowoe/domain/core"
)

// Rule is one bin definition for a continuous variable: a numeric
// interval with per-side boundary inclusivity, a human-readable label
// and a provenance pointer to the tree leaf it came from. The set of
// rules for one variable partitions the real line.
type Rule struct {
	Leaf      core.LeafID `json:"leaf"`
	Min       float64     `json:"min"`  // -Inf when unbounded below
	Max       float64     `json:"max"`  // +Inf when unbounded above
	MinClosed bool        `json:"min_closed"`
	MaxClosed bool        `json:"max_closed"`
	Label     string      `json:"label"`
	Predicate string      `json:"predicate"`
}

// Contains reports whether v falls inside the rule's interval
func (r Rule) Contains(v float64) bool {
	if math.IsInf(r.Min, -1) {
		// unbounded below
	} else if r.MinClosed {
		if v < r.Min {
			return false
		}
	} else if v <= r.Min {
		return false
	}
	if math.IsInf(r.Max, 1) {
		return true
	}
	if r.MaxClosed {
		return v <= r.Max
	}
	return v < r.Max
}

// FormatLabel renders the canonical bin label: the lower edge uses
// '<' when inclusive and '(' when exclusive, the upper edge '>' when
// inclusive and ')' when exclusive, with an empty field for an
// unbounded side.
func (r Rule) FormatLabel() string {
	lowerEdge := "("
	if r.MinClosed {
		lowerEdge = "<"
	}
	upperEdge := ")"
	if r.MaxClosed {
		upperEdge = ">"
	}
	lower := ""
	if !math.IsInf(r.Min, -1) {
		lower = formatBound(r.Min)
	}
	upper := ""
	if !math.IsInf(r.Max, 1) {
		upper = formatBound(r.Max)
	}
	return lowerEdge + lower + ";" + upper + upperEdge
}

// FormatPredicate renders the interval as a conjunction usable by a
// downstream range join, e.g. "amount >= 12 AND amount < 40". An
// interval unbounded on both sides collapses to the constant TRUE.
func (r Rule) FormatPredicate(variable core.VariableKey) string {
	var parts []string
	if !math.IsInf(r.Min, -1) {
		op := ">"
		if r.MinClosed {
			op = ">="
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", variable, op, formatBound(r.Min)))
	}
	if !math.IsInf(r.Max, 1) {
		op := "<"
		if r.MaxClosed {
			op = "<="
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", variable, op, formatBound(r.Max)))
	}
	if len(parts) == 0 {
		return "TRUE"
	}
	return strings.Join(parts, " AND ")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Set is the complete rule set for one continuous variable, keyed by
// leaf identity. Observations join rules by leaf, not numeric order.
type Set struct {
	Variable core.VariableKey `json:"variable"`
	Rules    []Rule           `json:"rules"`
}

// ByLeaf returns the rule originating from the given leaf
func (s *Set) ByLeaf(leaf core.LeafID) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Leaf == leaf {
			return r, true
		}
	}
	return Rule{}, false
}

// ByLabel returns the rule carrying the given bin label
func (s *Set) ByLabel(label string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Label == label {
			return r, true
		}
	}
	return Rule{}, false
}

// Match returns the rule whose interval contains v
func (s *Set) Match(v float64) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Contains(v) {
			return r, true
		}
	}
	return Rule{}, false
}

// SortedByMin returns the rules ordered by lower bound, with an
// unbounded lower side treated as -Inf.
func (s *Set) SortedByMin() []Rule {
	out := append([]Rule(nil), s.Rules...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Min != out[j].Min {
			return out[i].Min < out[j].Min
		}
		// A closed lower bound starts before an open one at the same point
		return out[i].MinClosed && !out[j].MinClosed
	})
	return out
}

// Validate checks that the rules are pairwise disjoint and cover the
// whole real line: sorted by lower bound, the first rule must be
// unbounded below, the last unbounded above, and each boundary must be
// shared by exactly one side.
func (s *Set) Validate() error {
	if len(s.Rules) == 0 {
		return fmt.Errorf("%w: variable %s has no rules", core.ErrMalformedRule, s.Variable)
	}
	ordered := s.SortedByMin()
	if !math.IsInf(ordered[0].Min, -1) {
		return fmt.Errorf("%w: variable %s has a gap below %g", core.ErrMalformedRule, s.Variable, ordered[0].Min)
	}
	last := ordered[len(ordered)-1]
	if !math.IsInf(last.Max, 1) {
		return fmt.Errorf("%w: variable %s has a gap above %g", core.ErrMalformedRule, s.Variable, last.Max)
	}
	for i := 0; i < len(ordered)-1; i++ {
		cur, next := ordered[i], ordered[i+1]
		if cur.Max != next.Min {
			return fmt.Errorf("%w: variable %s: rules %q and %q do not share a boundary",
				core.ErrMalformedRule, s.Variable, cur.Label, next.Label)
		}
		if cur.MaxClosed == next.MinClosed {
			return fmt.Errorf("%w: variable %s: boundary %g is %s on both sides",
				core.ErrMalformedRule, s.Variable, cur.Max, closure(cur.MaxClosed))
		}
	}
	return nil
}

func closure(closed bool) string {
	if closed {
		return "closed"
	}
	return "open"
}
