// Package pivot computes group-by aggregations over datasets — the in-process
// equivalent of a spreadsheet pivot table. Values are parsed from string cells;
// cells that do not parse as numbers are excluded from aggregation.
package pivot

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/klytics/pivotkit/internal/dataset"
)

// Agg identifies an aggregation function.
type Agg int

const (
	Sum Agg = iota
	Mean
	Count
	Min
	Max
)

// String returns the lowercase name used on the CLI and in batch files.
func (a Agg) String() string {
	switch a {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	case Count:
		return "count"
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return "unknown"
}

// Label returns the capitalized name used in sheet headers, e.g. "Sum".
func (a Agg) Label() string {
	switch a {
	case Sum:
		return "Sum"
	case Mean:
		return "Mean"
	case Count:
		return "Count"
	case Min:
		return "Min"
	case Max:
		return "Max"
	}
	return "Unknown"
}

// ParseAgg parses an aggregation name. Accepts "avg" and "average" as aliases
// for mean.
func ParseAgg(s string) (Agg, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return Sum, nil
	case "mean", "avg", "average":
		return Mean, nil
	case "count":
		return Count, nil
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	}
	return 0, fmt.Errorf("unknown aggregation %q — supported: sum, mean, count, min, max", s)
}

// Spec describes a pivot computation.
//
// With Column set the result is a cross-tab: one output column per distinct
// value of Column, and exactly one aggregation. With Column empty the result is
// a stats table: one output column per aggregation in Aggs.
type Spec struct {
	Index     string
	Column    string
	Values    string
	Aggs      []Agg
	FillValue float64
}

// Row is one output row of a pivot table.
type Row struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// Table is the result of a pivot computation.
type Table struct {
	IndexName string   `json:"indexName"`
	Columns   []string `json:"columns"`
	Rows      []Row    `json:"rows"`
}

// Compute runs the pivot described by spec over the dataset. Group keys are
// sorted ascending so output is deterministic.
func Compute(ds *dataset.Dataset, spec Spec) (*Table, error) {
	if spec.Index == "" {
		return nil, fmt.Errorf("pivot needs an index column — specify one with --index")
	}
	if spec.Values == "" {
		return nil, fmt.Errorf("pivot needs a values column — specify one with --values")
	}
	if err := ds.CheckColumn(spec.Index); err != nil {
		return nil, err
	}
	if err := ds.CheckColumn(spec.Values); err != nil {
		return nil, err
	}

	aggs := spec.Aggs
	if len(aggs) == 0 {
		aggs = []Agg{Sum}
	}

	if spec.Column != "" {
		if err := ds.CheckColumn(spec.Column); err != nil {
			return nil, err
		}
		if len(aggs) > 1 {
			return nil, fmt.Errorf("cross-tab pivots take a single aggregation, got %d", len(aggs))
		}
		return crossTab(ds, spec, aggs[0])
	}

	return statsTable(ds, spec, aggs)
}

func crossTab(ds *dataset.Dataset, spec Spec, agg Agg) (*Table, error) {
	groups := make(map[string]map[string][]float64)
	colSet := make(map[string]bool)

	for _, row := range ds.Rows {
		key := row[spec.Index]
		col := row[spec.Column]
		colSet[col] = true

		v, ok := parseCell(row[spec.Values])
		if groups[key] == nil {
			groups[key] = make(map[string][]float64)
		}
		if ok {
			groups[key][col] = append(groups[key][col], v)
		} else if _, exists := groups[key][col]; !exists {
			groups[key][col] = nil
		}
	}

	keys := sortedKeys(groups)
	cols := make([]string, 0, len(colSet))
	for c := range colSet {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	t := &Table{IndexName: spec.Index, Columns: cols}
	for _, key := range keys {
		r := Row{Key: key, Values: make([]float64, len(cols))}
		for i, col := range cols {
			vals := groups[key][col]
			if len(vals) == 0 {
				r.Values[i] = spec.FillValue
				continue
			}
			r.Values[i] = aggregate(agg, vals)
		}
		t.Rows = append(t.Rows, r)
	}

	return t, nil
}

func statsTable(ds *dataset.Dataset, spec Spec, aggs []Agg) (*Table, error) {
	groups := make(map[string][]float64)
	for _, row := range ds.Rows {
		key := row[spec.Index]
		if v, ok := parseCell(row[spec.Values]); ok {
			groups[key] = append(groups[key], v)
		} else if _, exists := groups[key]; !exists {
			groups[key] = nil
		}
	}

	cols := make([]string, len(aggs))
	for i, a := range aggs {
		cols[i] = a.Label() + " of " + spec.Values
	}

	t := &Table{IndexName: spec.Index, Columns: cols}
	for _, key := range sortedKeys(groups) {
		r := Row{Key: key, Values: make([]float64, len(aggs))}
		for i, a := range aggs {
			vals := groups[key]
			if len(vals) == 0 {
				r.Values[i] = spec.FillValue
				continue
			}
			r.Values[i] = aggregate(a, vals)
		}
		t.Rows = append(t.Rows, r)
	}

	return t, nil
}

func aggregate(agg Agg, vals []float64) float64 {
	switch agg {
	case Count:
		return float64(len(vals))
	case Sum, Mean:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if agg == Mean {
			return sum / float64(len(vals))
		}
		return sum
	case Min:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case Max:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	}
	return 0
}

func parseCell(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sheet renders the table as a header row followed by data rows, ready for the
// workbook writer.
func (t *Table) Sheet() [][]string {
	grid := make([][]string, 0, len(t.Rows)+1)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, t.IndexName)
	header = append(header, t.Columns...)
	grid = append(grid, header)

	for _, r := range t.Rows {
		row := make([]string, 0, len(r.Values)+1)
		row = append(row, r.Key)
		for _, v := range r.Values {
			row = append(row, FormatNumber(v))
		}
		grid = append(grid, row)
	}

	return grid
}

// FormatNumber formats a float as a clean string: integers bare, everything
// else with two decimals.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
