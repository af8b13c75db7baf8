package analysis

import (
	"gowoe/domain/core"
	"gowoe/domain/table"

	"github.com/montanaflynn/stats"
)

// ColumnProfile describes one column's basic statistics. Numeric
// summaries are zero for categorical columns.
type ColumnProfile struct {
	Variable    core.VariableKey `json:"variable"`
	Kind        table.Kind       `json:"kind"`
	SampleSize  int              `json:"sample_size"`
	Cardinality int              `json:"cardinality"`
	Mean        float64          `json:"mean,omitempty"`
	StdDev      float64          `json:"std_dev,omitempty"`
	Min         float64          `json:"min,omitempty"`
	Max         float64          `json:"max,omitempty"`
	Median      float64          `json:"median,omitempty"`
	Q25         float64          `json:"q25,omitempty"`
	Q75         float64          `json:"q75,omitempty"`
}

// ProfileColumn computes summary statistics for a single column
func ProfileColumn(col *table.Column) ColumnProfile {
	p := ColumnProfile{
		Variable:    col.Name,
		Kind:        col.Kind,
		SampleSize:  col.Len(),
		Cardinality: len(col.DistinctValues()),
	}
	if col.Kind != table.KindNumeric || len(col.Floats) == 0 {
		return p
	}
	p.Mean, _ = stats.Mean(col.Floats)
	p.StdDev, _ = stats.StandardDeviation(col.Floats)
	p.Min, _ = stats.Min(col.Floats)
	p.Max, _ = stats.Max(col.Floats)
	p.Median, _ = stats.Median(col.Floats)
	p.Q25, _ = stats.Percentile(col.Floats, 25)
	p.Q75, _ = stats.Percentile(col.Floats, 75)
	return p
}

// ProfileTable profiles every column of the table in column order
func ProfileTable(tbl *table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(tbl.Columns))
	for i := range tbl.Columns {
		profiles = append(profiles, ProfileColumn(&tbl.Columns[i]))
	}
	return profiles
}
