package report

import (
	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
)

// BuildStatic creates a workbook holding the raw data, each pivot view written
// as plain cells, and charts bound to the written ranges. The charts reference
// fixed ranges and do not change when the raw data is edited.
func BuildStatic(opts Options) (*Result, error) {
	ds, err := loadInput(opts)
	if err != nil {
		return nil, err
	}

	b := xlsx.NewBuilder()
	defer b.Close()

	res := &Result{OutputPath: opts.OutputPath, DataRows: ds.Len()}

	if _, err := b.AddSheet(rawDataSheet, ds.Grid()); err != nil {
		return nil, err
	}
	res.Sheets++

	if len(opts.Pivots) == 0 {
		if err := writeCanonicalViews(b, ds, opts, res); err != nil {
			return nil, err
		}
	} else {
		for _, req := range opts.Pivots {
			if _, err := writePivot(b, ds, req, opts, res); err != nil {
				return nil, err
			}
		}
	}

	if err := b.SaveAs(opts.OutputPath); err != nil {
		return nil, err
	}
	return res, nil
}

// writeCanonicalViews writes the two demo views: sales cross-tab with a column
// chart, and product quantity stats with a bar chart and a pie chart.
func writeCanonicalViews(b *xlsx.Builder, ds *dataset.Dataset, opts Options, res *Result) error {
	if err := canonicalRequests(ds); err != nil {
		return err
	}

	// Sales by Region x Product
	sales, err := pivot.Compute(ds, pivot.Spec{
		Index:     "Region",
		Column:    "Product",
		Values:    "Sales",
		Aggs:      []pivot.Agg{pivot.Sum},
		FillValue: opts.FillValue,
	})
	if err != nil {
		return err
	}

	salesName, err := b.AddSheet(salesPivotSheet, sales.Sheet())
	if err != nil {
		return err
	}
	res.Sheets++

	err = b.AddChart(salesName, "H2", xlsx.ChartSpec{
		Kind:       xlsx.ChartColumn,
		Title:      "Sales by Region and Product",
		XAxisTitle: "Region",
		YAxisTitle: "Total Sales",
		Series:     tableSeries(salesName, sales, xlsx.ChartColumn),
		Width:      opts.ChartWidth,
		Height:     opts.ChartHeight,
	})
	if err != nil {
		return err
	}
	res.Charts++

	// Product quantity statistics
	stats, err := pivot.Compute(ds, pivot.Spec{
		Index:     "Product",
		Values:    "Quantity",
		Aggs:      []pivot.Agg{pivot.Sum, pivot.Mean, pivot.Count},
		FillValue: opts.FillValue,
	})
	if err != nil {
		return err
	}

	statsName, err := b.AddSheet(productStatsSheet, stats.Sheet())
	if err != nil {
		return err
	}
	res.Sheets++

	rows := len(stats.Rows)
	sumSeries := []xlsx.Series{{
		Name:       "Total Quantity",
		Categories: xlsx.RangeRef(statsName, 1, 2, 1, rows+1),
		Values:     xlsx.RangeRef(statsName, 2, 2, 2, rows+1),
	}}

	err = b.AddChart(statsName, "F2", xlsx.ChartSpec{
		Kind:       xlsx.ChartBar,
		Title:      "Total Quantity by Product",
		XAxisTitle: "Total Quantity",
		YAxisTitle: "Product",
		Series:     sumSeries,
		Width:      opts.ChartWidth,
		Height:     opts.ChartHeight,
	})
	if err != nil {
		return err
	}
	res.Charts++

	err = b.AddChart(statsName, "F20", xlsx.ChartSpec{
		Kind:  xlsx.ChartPie,
		Title: "Quantity Distribution by Product",
		Series: []xlsx.Series{{
			Name:       "Quantity Distribution",
			Categories: xlsx.RangeRef(statsName, 1, 2, 1, rows+1),
			Values:     xlsx.RangeRef(statsName, 2, 2, 2, rows+1),
		}},
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
