// Package report builds pivot summary workbooks. It has three pipelines:
// static (computed pivot cells + charts), update (append a pivot to an
// existing workbook), and live (native PivotTable objects + charts).
package report

import (
	"fmt"

	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
)

// Sheet names used by the canonical report layout.
const (
	rawDataSheet      = "Raw Data"
	salesPivotSheet   = "Pivot - Sales by Region"
	productStatsSheet = "Pivot - Product Stats"
	updatePivotSheet  = "New Pivot"
)

// PivotRequest describes one pivot view of the data, optionally with a chart.
type PivotRequest struct {
	Index  string `json:"index" yaml:"index"`
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
	Values string `json:"values" yaml:"values"`
	Agg    string `json:"agg,omitempty" yaml:"agg,omitempty"`     // default: sum
	Chart  string `json:"chart,omitempty" yaml:"chart,omitempty"` // column, bar, pie, line, none
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Sheet  string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// Options configures a report build.
type Options struct {
	InputPath  string // empty: use the built-in sample data
	SheetName  string // sheet to read from .xlsx inputs
	OutputPath string
	Pivots     []PivotRequest // empty: the canonical sales/product views

	ChartWidth  uint
	ChartHeight uint
	FillValue   float64
	PivotStyle  string // live mode table style
}

// Result summarizes what a build wrote.
type Result struct {
	OutputPath  string `json:"outputPath"`
	DataRows    int    `json:"dataRows"`
	Sheets      int    `json:"sheets"`
	Charts      int    `json:"charts"`
	PivotTables int    `json:"pivotTables,omitempty"`
}

func loadInput(opts Options) (*dataset.Dataset, error) {
	if opts.InputPath == "" {
		return dataset.Sample(), nil
	}
	ds, err := dataset.LoadSheet(opts.InputPath, opts.SheetName)
	if err != nil {
		return nil, fmt.Errorf("could not load data: %w", err)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%s has no data rows — expected a header row followed by data", opts.InputPath)
	}
	return ds, nil
}

func (r PivotRequest) spec(fill float64) (pivot.Spec, error) {
	agg := pivot.Sum
	if r.Agg != "" {
		var err error
		agg, err = pivot.ParseAgg(r.Agg)
		if err != nil {
			return pivot.Spec{}, err
		}
	}
	return pivot.Spec{
		Index:     r.Index,
		Column:    r.Column,
		Values:    r.Values,
		Aggs:      []pivot.Agg{agg},
		FillValue: fill,
	}, nil
}

func (r PivotRequest) sheetName() string {
	if r.Sheet != "" {
		return r.Sheet
	}
	return "Pivot - " + r.Values + " by " + r.Index
}

func (r PivotRequest) chartTitle(agg pivot.Agg) string {
	if r.Title != "" {
		return r.Title
	}
	if r.Column != "" {
		return fmt.Sprintf("%s of %s by %s and %s", agg.Label(), r.Values, r.Index, r.Column)
	}
	return fmt.Sprintf("%s of %s by %s", agg.Label(), r.Values, r.Index)
}

// canonicalRequests returns the two demo views when the caller did not ask for
// specific pivots. The input must carry the demo column set.
func canonicalRequests(ds *dataset.Dataset) error {
	for _, col := range []string{"Region", "Product", "Sales", "Quantity"} {
		if err := ds.CheckColumn(col); err != nil {
			return fmt.Errorf("default report views need the sample columns: %w — describe your data with --index/--values instead", err)
		}
	}
	return nil
}

// writePivot computes a requested pivot, writes it to its own sheet, and
// attaches the requested chart. Returns the sheet name used.
func writePivot(b *xlsx.Builder, ds *dataset.Dataset, req PivotRequest, opts Options, res *Result) (string, error) {
	spec, err := req.spec(opts.FillValue)
	if err != nil {
		return "", err
	}

	table, err := pivot.Compute(ds, spec)
	if err != nil {
		return "", err
	}

	name, err := b.AddSheet(req.sheetName(), table.Sheet())
	if err != nil {
		return "", err
	}
	res.Sheets++

	if req.Chart == "none" {
		return name, nil
	}
	kind := xlsx.ChartColumn
	if req.Chart != "" {
		kind, err = xlsx.ParseChartKind(req.Chart)
		if err != nil {
			return "", err
		}
	}

	chart := xlsx.ChartSpec{
		Kind:        kind,
		Title:       req.chartTitle(spec.Aggs[0]),
		Series:      tableSeries(name, table, kind),
		ShowPercent: kind == xlsx.ChartPie,
		Width:       opts.ChartWidth,
		Height:      opts.ChartHeight,
	}
	if kind != xlsx.ChartPie {
		chart.XAxisTitle = req.Index
		chart.YAxisTitle = req.Values
	}

	if err := b.AddChart(name, chartAnchor(len(table.Columns)), chart); err != nil {
		return "", err
	}
	res.Charts++
	return name, nil
}

// tableSeries builds the chart series for a written pivot table: one series
// per value column for cartesian charts, a single series for pie charts.
func tableSeries(sheet string, table *pivot.Table, kind xlsx.ChartKind) []xlsx.Series {
	rows := len(table.Rows)
	cats := xlsx.RangeRef(sheet, 1, 2, 1, rows+1)

	if kind == xlsx.ChartPie {
		return []xlsx.Series{{
			Name:       xlsx.RangeRef(sheet, 2, 1, 2, 1),
			Categories: cats,
			Values:     xlsx.RangeRef(sheet, 2, 2, 2, rows+1),
		}}
	}

	series := make([]xlsx.Series, len(table.Columns))
	for j := range table.Columns {
		col := j + 2 // first value column is B
		series[j] = xlsx.Series{
			Name:       xlsx.RangeRef(sheet, col, 1, col, 1),
			Categories: cats,
			Values:     xlsx.RangeRef(sheet, col, 2, col, rows+1),
		}
	}
	return series
}

// chartAnchor places the chart three columns right of the table, which lands
// at E2 for a single-value pivot and H2 for the four-product cross-tab.
func chartAnchor(valueCols int) string {
	return xlsx.CellName(valueCols+4, 2)
}
