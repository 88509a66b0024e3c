// Package dataset loads tabular data from CSV, JSON, and XLSX sources into a
// uniform row/column representation that the pivot engine consumes.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klytics/pivotkit/internal/formats/xlsx"
)

// Dataset is a loaded tabular data set. All cell values are kept as strings;
// numeric columns are parsed on demand when aggregating.
type Dataset struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Source  string              `json:"source"`
}

// Load reads a data source from a file. Supports .csv, .json, and .xlsx.
// For .xlsx files the first sheet is used; see LoadSheet for a named sheet.
func Load(path string) (*Dataset, error) {
	return LoadSheet(path, "")
}

// LoadSheet reads a data source, selecting the named sheet for .xlsx inputs.
// The sheet argument is ignored for other formats.
func LoadSheet(path, sheet string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	case ".xlsx":
		return loadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported data format: %s (supported: .csv, .json, .xlsx)", ext)
	}
}

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse CSV: %w", err)
	}
	if len(records) < 1 {
		return &Dataset{Source: path}, nil
	}

	return fromGrid(records, path), nil
}

func loadJSON(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	// Array of objects first, then a single object
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var single map[string]any
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("could not parse JSON: expected array of objects or single object")
		}
		records = []map[string]any{single}
	}

	ds := &Dataset{Source: path}

	colSet := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			colSet[k] = true
		}
	}
	for k := range colSet {
		ds.Columns = append(ds.Columns, k)
	}
	sort.Strings(ds.Columns)

	for _, rec := range records {
		m := make(map[string]string)
		for k, v := range rec {
			m[k] = fmt.Sprintf("%v", v)
		}
		ds.Rows = append(ds.Rows, m)
	}

	return ds, nil
}

func loadXLSX(path, sheet string) (*Dataset, error) {
	wb, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	var s *xlsx.Sheet
	if sheet == "" {
		s = &wb.Sheets[0]
	} else {
		s, err = wb.GetSheet(sheet)
		if err != nil {
			return nil, err
		}
	}

	return FromSheet(s, path)
}

// FromSheet converts a worksheet into a Dataset, treating the first row as the
// header row.
func FromSheet(s *xlsx.Sheet, source string) (*Dataset, error) {
	if len(s.Rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty — expected a header row followed by data", s.Name)
	}
	return fromGrid(s.Rows, source), nil
}

func fromGrid(grid [][]string, source string) *Dataset {
	headers := grid[0]
	ds := &Dataset{
		Columns: headers,
		Source:  source,
	}

	for _, row := range grid[1:] {
		m := make(map[string]string)
		for i, col := range headers {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		ds.Rows = append(ds.Rows, m)
	}

	return ds
}

// Grid renders the dataset as a header row followed by data rows, in column
// order. This is the shape the workbook writer takes.
func (ds *Dataset) Grid() [][]string {
	grid := make([][]string, 0, len(ds.Rows)+1)
	grid = append(grid, ds.Columns)
	for _, row := range ds.Rows {
		r := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			r[i] = row[col]
		}
		grid = append(grid, r)
	}
	return grid
}

// HasColumn reports whether the dataset contains the named column.
func (ds *Dataset) HasColumn(name string) bool {
	for _, c := range ds.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CheckColumn returns an error naming the available columns when the requested
// one does not exist.
func (ds *Dataset) CheckColumn(name string) error {
	if ds.HasColumn(name) {
		return nil
	}
	return fmt.Errorf("column %q not found — available columns: %v", name, ds.Columns)
}

// NumericColumns returns the columns whose every non-empty cell parses as a
// number, in dataset column order.
func (ds *Dataset) NumericColumns() []string {
	var numeric []string
	for _, col := range ds.Columns {
		seen := false
		ok := true
		for _, row := range ds.Rows {
			v := strings.TrimSpace(row[col])
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				ok = false
				break
			}
		}
		if seen && ok {
			numeric = append(numeric, col)
		}
	}
	return numeric
}

// Len returns the number of data rows.
func (ds *Dataset) Len() int {
	return len(ds.Rows)
}
