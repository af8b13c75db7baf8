package table

import (
	"fmt"

	"gowoe/domain/core"
)

// Kind tags a column as numeric or categorical. The tag is resolved once
// when the column is built, never re-checked per row.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Column is one predictor or outcome column of an observation table.
// Exactly one of Floats/Strings is populated, matching Kind.
type Column struct {
	Name    core.VariableKey
	Kind    Kind
	Floats  []float64
	Strings []string
	// Levels is the declared category order for categorical columns.
	// When empty, first-seen order applies.
	Levels []string
}

// Len returns the number of observations in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// CategoryOrder returns the declared level order when known, otherwise
// the first-seen order of the observed values.
func (c *Column) CategoryOrder() []string {
	if len(c.Levels) > 0 {
		return append([]string(nil), c.Levels...)
	}
	seen := make(map[string]bool, 8)
	var order []string
	for _, v := range c.Strings {
		if !seen[v] {
			seen[v] = true
			order = append(order, v)
		}
	}
	return order
}

// DistinctValues returns the set of distinct observed values as strings,
// in first-seen order. Numeric columns are formatted with %g.
func (c *Column) DistinctValues() []string {
	seen := make(map[string]bool, 8)
	var distinct []string
	appendValue := func(v string) {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	if c.Kind == KindNumeric {
		for _, v := range c.Floats {
			appendValue(fmt.Sprintf("%g", v))
		}
	} else {
		for _, v := range c.Strings {
			appendValue(v)
		}
	}
	return distinct
}

// Table is an ordered, read-only collection of observation columns.
// All columns have the same length; rows are identified by position.
type Table struct {
	Columns []Column
}

// New creates an empty observation table
func New() *Table {
	return &Table{}
}

// AddNumeric appends a numeric column to the table
func (t *Table) AddNumeric(name core.VariableKey, values []float64) error {
	if err := t.checkLength(name, len(values)); err != nil {
		return err
	}
	t.Columns = append(t.Columns, Column{Name: name, Kind: KindNumeric, Floats: values})
	return nil
}

// AddCategorical appends a categorical column. Levels, when given,
// declare the category order used for bin ordering.
func (t *Table) AddCategorical(name core.VariableKey, values []string, levels ...string) error {
	if err := t.checkLength(name, len(values)); err != nil {
		return err
	}
	t.Columns = append(t.Columns, Column{Name: name, Kind: KindCategorical, Strings: values, Levels: levels})
	return nil
}

func (t *Table) checkLength(name core.VariableKey, n int) error {
	if len(t.Columns) > 0 && n != t.RowCount() {
		return fmt.Errorf("%w: column %s has %d rows, table has %d",
			core.ErrInvalidInput, name, n, t.RowCount())
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return fmt.Errorf("%w: duplicate column %s", core.ErrInvalidInput, name)
		}
	}
	return nil
}

// Column returns the column with the given name
func (t *Table) Column(name core.VariableKey) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// RowCount returns the number of observations
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// VariableKeys returns all column names in table order
func (t *Table) VariableKeys() []core.VariableKey {
	keys := make([]core.VariableKey, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Name
	}
	return keys
}

// CategoricalKeys returns the names of all categorical columns except
// the given outcome column. This is the default analysis scope:
// numeric predictors must be named explicitly by the caller.
func (t *Table) CategoricalKeys(outcome core.VariableKey) []core.VariableKey {
	var keys []core.VariableKey
	for _, c := range t.Columns {
		if c.Name == outcome {
			continue
		}
		if c.Kind == KindCategorical {
			keys = append(keys, c.Name)
		}
	}
	return keys
}

// Validate ensures the table is internally consistent
func (t *Table) Validate() error {
	if t.RowCount() == 0 {
		return core.ErrEmptyTable
	}
	n := t.RowCount()
	for _, c := range t.Columns {
		if c.Len() != n {
			return fmt.Errorf("%w: column %s has %d rows, expected %d",
				core.ErrInvalidInput, c.Name, c.Len(), n)
		}
	}
	return nil
}

// Clone returns a deep copy of the table. The analysis pipeline never
// mutates its input; the encoder appends columns to a clone instead.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name:    c.Name,
			Kind:    c.Kind,
			Floats:  append([]float64(nil), c.Floats...),
			Strings: append([]string(nil), c.Strings...),
			Levels:  append([]string(nil), c.Levels...),
		}
	}
	return out
}
