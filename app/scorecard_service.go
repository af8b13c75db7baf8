package app

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/domain/woe"
	"gowoe/internal"
	"gowoe/internal/analysis"
	"gowoe/internal/binning"
	"gowoe/ports"

	"golang.org/x/sync/errgroup"
)

// ScorecardConfig controls the variable orchestration
type ScorecardConfig struct {
	// MinLeafFraction sets the tree's minimum leaf size as a fraction
	// of the row count. Default 0.10.
	MinLeafFraction float64
	// ComplexityThreshold is the minimum information gain a split must
	// produce to be kept
	ComplexityThreshold float64
	// ContinueOnError collects per-variable failures instead of
	// aborting the whole run on the first one
	ContinueOnError bool
	// Parallelism caps concurrent variable pipelines; 0 means NumCPU
	Parallelism int
}

// DefaultScorecardConfig returns the documented defaults
func DefaultScorecardConfig() ScorecardConfig {
	return ScorecardConfig{
		MinLeafFraction:     0.10,
		ComplexityThreshold: 0.0,
	}
}

// VariableFailure records why one variable's pipeline was aborted
type VariableFailure struct {
	Variable core.VariableKey `json:"variable"`
	Err      error            `json:"-"`
	Message  string           `json:"error"`
}

// ScorecardResult is the complete output of one analysis run
type ScorecardResult struct {
	RunID     core.RunID        `json:"run_id"`
	Outcome   core.VariableKey  `json:"outcome"`
	Tables    []*woe.Table      `json:"tables"`
	Summary   []woe.SummaryRow  `json:"summary"`
	Failures  []VariableFailure `json:"failures,omitempty"`
	RuntimeMs int64             `json:"runtime_ms"`
	CreatedAt core.Timestamp    `json:"created_at"`
}

// Warnings collects the non-fatal warnings of every table in the run
func (r *ScorecardResult) Warnings() []woe.Warning {
	var out []woe.Warning
	for _, t := range r.Tables {
		out = append(out, t.Warnings...)
	}
	return out
}

// TableFor returns the fitted WOE table for a variable
func (r *ScorecardResult) TableFor(variable core.VariableKey) (*woe.Table, bool) {
	for _, t := range r.Tables {
		if t.Variable == variable {
			return t, true
		}
	}
	return nil, false
}

// ScorecardService orchestrates per-variable WOE analysis: categorical
// variables go straight to the statistics engine, numeric variables
// through the tree-fit and interval-rule chain first.
type ScorecardService struct {
	learner ports.TreeLearnerPort
	cfg     ScorecardConfig
}

// NewScorecardService creates the orchestrator
func NewScorecardService(learner ports.TreeLearnerPort, cfg ScorecardConfig) *ScorecardService {
	if cfg.MinLeafFraction <= 0 {
		cfg.MinLeafFraction = 0.10
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.NumCPU()
	}
	return &ScorecardService{learner: learner, cfg: cfg}
}

// Analyze fits one WOE table per requested predictor against the
// outcome column. When variables is empty the scope defaults to all
// non-outcome categorical columns; numeric columns are analyzed only
// when named explicitly. Independent variables run in parallel; the
// observation table is read-only throughout.
//
// The first failing variable aborts the whole run unless
// ContinueOnError is set, in which case failures are collected on the
// result and the remaining variables still complete.
func (s *ScorecardService) Analyze(ctx context.Context, tbl *table.Table, outcomeKey core.VariableKey, variables []core.VariableKey) (*ScorecardResult, error) {
	start := time.Now()
	if err := tbl.Validate(); err != nil {
		return nil, err
	}

	outCol, ok := tbl.Column(outcomeKey)
	if !ok {
		return nil, fmt.Errorf("%w: outcome %s", core.ErrVariableNotFound, outcomeKey)
	}
	outcome, err := table.NormalizeOutcome(outCol)
	if err != nil {
		return nil, err
	}

	if len(variables) == 0 {
		variables = tbl.CategoricalKeys(outcomeKey)
		internal.DefaultLogger.Info("[Scorecard] no variables named; defaulting to %d categorical columns (numeric predictors must be named explicitly)", len(variables))
	}
	for _, v := range variables {
		if v == outcomeKey {
			return nil, fmt.Errorf("%w: outcome %s cannot be a predictor", core.ErrInvalidInput, v)
		}
		if _, ok := tbl.Column(v); !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrVariableNotFound, v)
		}
	}

	minLeaf := int(math.Ceil(s.cfg.MinLeafFraction * float64(tbl.RowCount())))
	if minLeaf < 1 {
		minLeaf = 1
	}

	result := &ScorecardResult{
		RunID:     core.RunID(core.NewID()),
		Outcome:   outcomeKey,
		CreatedAt: core.Now(),
	}

	tables := make([]*woe.Table, len(variables))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)
	for i, v := range variables {
		i, v := i, v
		g.Go(func() error {
			t, err := s.analyzeVariable(gctx, tbl, v, outcome, minLeaf)
			if err != nil {
				err = core.NewVariableError(v, err)
				if s.cfg.ContinueOnError {
					mu.Lock()
					result.Failures = append(result.Failures, VariableFailure{
						Variable: v, Err: err, Message: err.Error(),
					})
					mu.Unlock()
					return nil
				}
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, t := range tables {
		if t != nil {
			result.Tables = append(result.Tables, t)
		}
	}
	result.Summary = woe.Summarize(result.Tables)
	result.RuntimeMs = time.Since(start).Milliseconds()
	internal.DefaultLogger.Info("[Scorecard] run %s: %d variables analyzed, %d failed in %dms",
		result.RunID, len(result.Tables), len(result.Failures), result.RuntimeMs)
	return result, nil
}

// analyzeVariable dispatches on the predictor kind, resolved once here
func (s *ScorecardService) analyzeVariable(ctx context.Context, tbl *table.Table, variable core.VariableKey, outcome *table.Outcome, minLeaf int) (*woe.Table, error) {
	col, _ := tbl.Column(variable)
	switch col.Kind {
	case table.KindCategorical:
		bins, order := binning.AssignCategorical(col)
		return analysis.Compute(variable, woe.KindCategorical, bins, order, outcome)
	case table.KindNumeric:
		return s.analyzeContinuous(ctx, col, variable, outcome, minLeaf)
	default:
		return nil, fmt.Errorf("%w: column %s has kind %q", core.ErrInvalidInput, variable, col.Kind)
	}
}

func (s *ScorecardService) analyzeContinuous(ctx context.Context, col *table.Column, variable core.VariableKey, outcome *table.Outcome, minLeaf int) (*woe.Table, error) {
	fittedTree, err := s.learner.Fit(ctx, variable, col.Floats, outcome.Values, ports.TreeConfig{
		MinLeafSize:         minLeaf,
		ComplexityThreshold: s.cfg.ComplexityThreshold,
	})
	if err != nil {
		return nil, err
	}

	rules, err := binning.RulesFromTree(variable, fittedTree)
	if err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	bins, err := binning.AssignByLeaf(variable, fittedTree.LeafAssignments(), rules)
	if err != nil {
		return nil, err
	}

	t, err := analysis.Compute(variable, woe.KindContinuous, bins, binning.RuleOrder(rules), outcome)
	if err != nil {
		return nil, err
	}
	// Attach the reusable interval predicates for out-of-sample encoding
	for i := range t.Rows {
		if rule, ok := rules.ByLabel(t.Rows[i].Bin); ok {
			t.Rows[i].Predicate = rule.Predicate
		}
	}
	t.Rules = rules
	return t, nil
}

// Encode applies fitted WOE tables to a dataset, appending one
// "<variable>_woe" column per table. See analysis.ApplyEncoding.
func (s *ScorecardService) Encode(tbl *table.Table, fitted []*woe.Table) (*table.Table, error) {
	return analysis.ApplyEncoding(tbl, fitted)
}
