// Package postgres loads observation tables from a PostgreSQL query.
package postgres

import (
	"context"
	"fmt"
	"strconv"

	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/internal/errors"
	"gowoe/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// TableSource reads the result set of a SQL query into an observation
// table. Column typing follows the driver's scan types: integers and
// floats become numeric columns, everything else categorical.
type TableSource struct {
	db    *sqlx.DB
	query string
}

var _ ports.TableSourcePort = (*TableSource)(nil)

// NewTableSource creates a source over an open connection and query
func NewTableSource(db *sqlx.DB, query string) *TableSource {
	return &TableSource{db: db, query: query}
}

// Open connects to Postgres and returns a source for the query
func Open(url, query string) (*TableSource, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}
	return NewTableSource(db, query), nil
}

// Load executes the query and assembles the observation table
func (s *TableSource) Load(ctx context.Context) (*table.Table, error) {
	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}

	cells := make([][]string, len(columns))
	numeric := make([]bool, len(columns))
	for i := range numeric {
		numeric[i] = true
	}

	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DataSourceError("postgres", err)
		}
		for i, v := range raw {
			text, isNumeric := cellValue(v)
			cells[i] = append(cells[i], text)
			if !isNumeric {
				numeric[i] = false
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}

	tbl := table.New()
	for i, name := range columns {
		key := core.VariableKey(name)
		if numeric[i] {
			floats := make([]float64, len(cells[i]))
			for j, c := range cells[i] {
				floats[j], _ = strconv.ParseFloat(c, 64)
			}
			if err := tbl.AddNumeric(key, floats); err != nil {
				return nil, err
			}
		} else {
			if err := tbl.AddCategorical(key, cells[i]); err != nil {
				return nil, err
			}
		}
	}
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	return tbl, nil
}

// cellValue renders a scanned value as text and reports whether it is
// numeric. []byte cells are re-parsed because pq hands numerics back
// as raw bytes.
func cellValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(val), false
	case []byte:
		text := string(val)
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return text, true
		}
		return text, false
	default:
		return fmt.Sprintf("%v", val), false
	}
}
