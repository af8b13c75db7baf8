package ports

import (
	"context"

	"gowoe/domain/core"
)

// Comparator is an inequality direction in a split condition
type Comparator string

const (
	CompLT Comparator = "<"
	CompLE Comparator = "<="
	CompGT Comparator = ">"
	CompGE Comparator = ">="
)

// SplitCondition is one conjunct of a leaf decision path
type SplitCondition struct {
	Variable   core.VariableKey `json:"variable"`
	Comparator Comparator       `json:"comparator"`
	Threshold  float64          `json:"threshold"`
}

// TreeConfig configures a split-tree fit
type TreeConfig struct {
	// MinLeafSize is the minimum number of observations per leaf
	MinLeafSize int
	// ComplexityThreshold is the minimum information gain required
	// for a split to be kept
	ComplexityThreshold float64
}

// FittedTree is the narrow view of a fitted binary split tree the
// binning pipeline consumes. Any supervised binary-split learner
// satisfying this contract is substitutable.
type FittedTree interface {
	// Leaves returns all terminal node identifiers
	Leaves() []core.LeafID
	// LeafAssignments returns the leaf identifier for each fitted
	// observation, in input row order
	LeafAssignments() []core.LeafID
	// Path returns the decision path of a leaf as a conjunction of
	// inequality conditions
	Path(leaf core.LeafID) ([]SplitCondition, bool)
}

// TreeLearnerPort fits a binary split tree of outcome ~ predictor over
// a single numeric predictor column.
type TreeLearnerPort interface {
	Fit(ctx context.Context, variable core.VariableKey, values []float64, outcome []int, cfg TreeConfig) (FittedTree, error)
}
