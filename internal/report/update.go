package report

import (
	"fmt"

	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
)

// BuildUpdate opens an existing workbook, reads its data sheet, and appends a
// pivot sheet with a chart. Existing sheets are left untouched.
func BuildUpdate(opts Options) (*Result, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("update mode needs an existing workbook — pass --input")
	}

	wb, err := xlsx.ReadFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", opts.InputPath)
	}

	sheet := &wb.Sheets[0]
	if opts.SheetName != "" {
		sheet, err = wb.GetSheet(opts.SheetName)
		if err != nil {
			return nil, err
		}
	}

	ds, err := dataset.FromSheet(sheet, opts.InputPath)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("sheet %q has no data rows to pivot", sheet.Name)
	}

	reqs := opts.Pivots
	if len(reqs) == 0 {
		req, err := defaultUpdateRequest(ds)
		if err != nil {
			return nil, err
		}
		reqs = []PivotRequest{req}
	}

	b, err := xlsx.OpenBuilder(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	res := &Result{DataRows: ds.Len()}
	for _, req := range reqs {
		if _, err := writePivot(b, ds, req, opts, res); err != nil {
			return nil, err
		}
	}

	if opts.OutputPath == "" || opts.OutputPath == opts.InputPath {
		res.OutputPath = opts.InputPath
		if err := b.Save(); err != nil {
			return nil, err
		}
		return res, nil
	}

	res.OutputPath = opts.OutputPath
	if err := b.SaveAs(opts.OutputPath); err != nil {
		return nil, err
	}
	return res, nil
}

// defaultUpdateRequest guesses a sensible pivot for unknown data: group the
// first numeric column by the second column (falling back to the first).
func defaultUpdateRequest(ds *dataset.Dataset) (PivotRequest, error) {
	index := ds.Columns[0]
	if len(ds.Columns) > 1 {
		index = ds.Columns[1]
	}

	values := ""
	for _, col := range ds.NumericColumns() {
		if col != index {
			values = col
			break
		}
	}
	if values == "" {
		return PivotRequest{}, fmt.Errorf("no numeric column found in %q — nothing to aggregate; name one with --values", ds.Source)
	}

	return PivotRequest{
		Index:  index,
		Values: values,
		Agg:    "sum",
		Chart:  "bar",
		Title:  "Data Summary",
		Sheet:  updatePivotSheet,
	}, nil
}
