// Package excel loads observation tables from Excel and CSV files.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/internal"
	"gowoe/internal/errors"
	"gowoe/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader reads an Excel or CSV file into an observation table.
// Column typing is value-driven: a column whose every non-empty cell
// parses as a float becomes numeric, everything else categorical.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

var _ ports.TableSourcePort = (*DataReader)(nil)

// NewDataReader creates a reader for the given file, dispatching on
// its extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: "Sheet1"}
}

// WithSheet overrides the worksheet name for Excel files
func (r *DataReader) WithSheet(sheet string) *DataReader {
	r.sheet = sheet
	return r
}

// Load reads the file into an observation table
func (r *DataReader) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataSourceError(r.fileType, fmt.Errorf("file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.DataSourceError(r.fileType, fmt.Errorf("unsupported file type"))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.DataSourceError(r.fileType, fmt.Errorf("need a header row and at least one data row"))
	}
	return buildTable(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DataSourceError("xlsx", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.DataSourceError("xlsx", fmt.Errorf("failed to read %s: %w", r.sheet, err))
	}
	internal.DefaultLogger.Debug("[DataReader] %s: read %d rows from %s", r.filePath, len(rows), r.sheet)
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DataSourceError("csv", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.DataSourceError("csv", err)
	}
	internal.DefaultLogger.Debug("[DataReader] %s: read %d rows", r.filePath, len(rows))
	return rows, nil
}

// buildTable converts header + string rows into typed columns
func buildTable(rows [][]string) (*table.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	tbl := table.New()
	for col, header := range headers {
		if header == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("column %d has an empty header", col))
		}
		cells := make([]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			cell := ""
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			cells = append(cells, cell)
		}

		name := core.VariableKey(header)
		if floats, ok := parseNumeric(cells); ok {
			if err := tbl.AddNumeric(name, floats); err != nil {
				return nil, err
			}
		} else {
			if err := tbl.AddCategorical(name, cells); err != nil {
				return nil, err
			}
		}
	}
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	return tbl, nil
}

// parseNumeric returns the column as floats when every cell parses
func parseNumeric(cells []string) ([]float64, bool) {
	floats := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		floats[i] = v
	}
	return floats, true
}
