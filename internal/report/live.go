package report

import (
	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
)

// Native pivot layout offsets: the table lands at A3, Excel renders its column
// headers on row 4 and the first data row on row 5.
const (
	pivotAnchorCell   = "A3"
	pivotHeaderRow    = 4
	pivotFirstBodyRow = 5
)

// BuildLive creates a workbook with native PivotTable objects instead of
// precomputed cells. The pivots stay interactive in Excel: fields can be
// rearranged and the tables refresh from the raw data sheet. Charts reference
// the pivot destination ranges, which Excel populates when it rebuilds the
// pivot caches on open.
func BuildLive(opts Options) (*Result, error) {
	ds, err := loadInput(opts)
	if err != nil {
		return nil, err
	}

	b := xlsx.NewBuilder()
	defer b.Close()

	res := &Result{OutputPath: opts.OutputPath, DataRows: ds.Len()}

	rawName, err := b.AddSheet(rawDataSheet, ds.Grid())
	if err != nil {
		return nil, err
	}
	res.Sheets++
	dataRange := xlsx.PlainRange(rawName, 1, 1, len(ds.Columns), ds.Len()+1)

	if len(opts.Pivots) == 0 {
		if err := writeCanonicalLive(b, ds, dataRange, opts, res); err != nil {
			return nil, err
		}
	} else {
		for _, req := range opts.Pivots {
			if err := writeLivePivot(b, ds, dataRange, req, opts, res); err != nil {
				return nil, err
			}
		}
	}

	if err := b.SaveAs(opts.OutputPath); err != nil {
		return nil, err
	}
	return res, nil
}

func writeCanonicalLive(b *xlsx.Builder, ds *dataset.Dataset, dataRange string, opts Options, res *Result) error {
	if err := canonicalRequests(ds); err != nil {
		return err
	}

	// Sales by Region x Product, as a native PivotTable with a column chart
	sales, err := pivot.Compute(ds, pivot.Spec{
		Index: "Region", Column: "Product", Values: "Sales",
		Aggs: []pivot.Agg{pivot.Sum}, FillValue: opts.FillValue,
	})
	if err != nil {
		return err
	}

	salesName, err := b.AddSheet(salesPivotSheet, nil)
	if err != nil {
		return err
	}
	res.Sheets++

	err = b.AddPivotTable(xlsx.PivotTableSpec{
		Name:      "SalesByRegion",
		DataRange: dataRange,
		Sheet:     salesName,
		Range:     destRange(len(sales.Rows), len(sales.Columns)),
		Rows:      []string{"Region"},
		Columns:   []string{"Product"},
		Values:    []xlsx.PivotValue{{Field: "Sales", Name: "Sum of Sales", Subtotal: "Sum"}},
		Style:     opts.PivotStyle,
	})
	if err != nil {
		return err
	}
	res.PivotTables++

	err = b.AddChart(salesName, chartAnchorAt(len(sales.Columns)+4), xlsx.ChartSpec{
		Kind:       xlsx.ChartColumn,
		Title:      "Sales by Region and Product",
		XAxisTitle: "Region",
		YAxisTitle: "Total Sales",
		Series:     pivotBodySeries(salesName, sales, false),
		Width:      opts.ChartWidth,
		Height:     opts.ChartHeight,
	})
	if err != nil {
		return err
	}
	res.Charts++

	// Product quantity stats with sum and average value fields and a pie chart
	stats, err := pivot.Compute(ds, pivot.Spec{
		Index: "Product", Values: "Quantity",
		Aggs: []pivot.Agg{pivot.Sum, pivot.Mean}, FillValue: opts.FillValue,
	})
	if err != nil {
		return err
	}

	statsName, err := b.AddSheet(productStatsSheet, nil)
	if err != nil {
		return err
	}
	res.Sheets++

	err = b.AddPivotTable(xlsx.PivotTableSpec{
		Name:      "ProductStats",
		DataRange: dataRange,
		Sheet:     statsName,
		Range:     destRange(len(stats.Rows), len(stats.Columns)),
		Rows:      []string{"Product"},
		Values: []xlsx.PivotValue{
			{Field: "Quantity", Name: "Sum of Quantity", Subtotal: "Sum"},
			{Field: "Quantity", Name: "Average Quantity", Subtotal: "Average"},
		},
		Style: opts.PivotStyle,
	})
	if err != nil {
		return err
	}
	res.PivotTables++

	err = b.AddChart(statsName, chartAnchorAt(6), xlsx.ChartSpec{
		Kind:        xlsx.ChartPie,
		Title:       "Quantity Distribution by Product",
		Series:      pivotBodySeries(statsName, stats, true),
		ShowPercent: true,
		Width:       opts.ChartWidth,
		Height:      opts.ChartHeight,
	})
	if err != nil {
		return err
	}
	res.Charts++

	return nil
}

func writeLivePivot(b *xlsx.Builder, ds *dataset.Dataset, dataRange string, req PivotRequest, opts Options, res *Result) error {
	spec, err := req.spec(opts.FillValue)
	if err != nil {
		return err
	}

	// Compute the same pivot in-process to size the destination and charts
	table, err := pivot.Compute(ds, spec)
	if err != nil {
		return err
	}

	name, err := b.AddSheet(req.sheetName(), nil)
	if err != nil {
		return err
	}
	res.Sheets++

	pt := xlsx.PivotTableSpec{
		Name:      pivotObjectName(name),
		DataRange: dataRange,
		Sheet:     name,
		Range:     destRange(len(table.Rows), len(table.Columns)),
		Rows:      []string{req.Index},
		Values: []xlsx.PivotValue{{
			Field:    req.Values,
			Name:     spec.Aggs[0].Label() + " of " + req.Values,
			Subtotal: subtotalName(spec.Aggs[0]),
		}},
		Style: opts.PivotStyle,
	}
	if req.Column != "" {
		pt.Columns = []string{req.Column}
	}
	if err := b.AddPivotTable(pt); err != nil {
		return err
	}
	res.PivotTables++

	if req.Chart == "none" {
		return nil
	}
	kind := xlsx.ChartColumn
	if req.Chart != "" {
		kind, err = xlsx.ParseChartKind(req.Chart)
		if err != nil {
			return err
		}
	}

	chart := xlsx.ChartSpec{
		Kind:        kind,
		Title:       req.chartTitle(spec.Aggs[0]),
		Series:      pivotBodySeries(name, table, kind == xlsx.ChartPie),
		ShowPercent: kind == xlsx.ChartPie,
		Width:       opts.ChartWidth,
		Height:      opts.ChartHeight,
	}
	if kind != xlsx.ChartPie {
		chart.XAxisTitle = req.Index
		chart.YAxisTitle = req.Values
	}

	if err := b.AddChart(name, chartAnchorAt(len(table.Columns)+4), chart); err != nil {
		return err
	}
	res.Charts++
	return nil
}

// pivotBodySeries references the body of a native pivot destination range.
func pivotBodySeries(sheet string, table *pivot.Table, single bool) []xlsx.Series {
	rows := len(table.Rows)
	lastRow := pivotFirstBodyRow + rows - 1
	cats := xlsx.RangeRef(sheet, 1, pivotFirstBodyRow, 1, lastRow)

	if single {
		return []xlsx.Series{{
			Name:       xlsx.RangeRef(sheet, 2, pivotHeaderRow, 2, pivotHeaderRow),
			Categories: cats,
			Values:     xlsx.RangeRef(sheet, 2, pivotFirstBodyRow, 2, lastRow),
		}}
	}

	series := make([]xlsx.Series, len(table.Columns))
	for j := range table.Columns {
		col := j + 2
		series[j] = xlsx.Series{
			Name:       xlsx.RangeRef(sheet, col, pivotHeaderRow, col, pivotHeaderRow),
			Categories: cats,
			Values:     xlsx.RangeRef(sheet, col, pivotFirstBodyRow, col, lastRow),
		}
	}
	return series
}

// destRange sizes the pivot destination generously: grand total row/column
// plus header rows on top of the computed dimensions.
func destRange(rows, cols int) string {
	return pivotAnchorCell + ":" + xlsx.CellName(cols+2, rows+6)
}

func chartAnchorAt(col int) string {
	return xlsx.CellName(col, 3)
}

func subtotalName(a pivot.Agg) string {
	switch a {
	case pivot.Mean:
		return "Average"
	case pivot.Count:
		return "Count"
	case pivot.Min:
		return "Min"
	case pivot.Max:
		return "Max"
	default:
		return "Sum"
	}
}

func pivotObjectName(sheet string) string {
	var b []rune
	for _, r := range sheet {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b = append(b, r)
		}
	}
	if len(b) == 0 {
		return "PivotTable1"
	}
	return string(b)
}
