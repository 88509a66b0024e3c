package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PivotValue is one value field of a native PivotTable.
type PivotValue struct {
	Field    string // source column
	Name     string // display name, e.g. "Sum of Sales"
	Subtotal string // excelize subtotal name: Sum, Average, Count, Max, Min
}

// PivotTableSpec describes a native Excel PivotTable object. Unlike the
// computed pivots, these stay interactive: Excel rebuilds them from the data
// range when the workbook is opened.
type PivotTableSpec struct {
	Name      string
	DataRange string // unquoted, e.g. "Raw Data!A1:E101"
	Sheet     string // destination sheet (must exist)
	Range     string // destination range on Sheet, e.g. "A3:H20"
	Rows      []string
	Columns   []string
	Values    []PivotValue
	Style     string // e.g. "PivotStyleMedium9"
}

// AddPivotTable inserts a native PivotTable object.
func (b *Builder) AddPivotTable(spec PivotTableSpec) error {
	opts := &excelize.PivotTableOptions{
		Name:            spec.Name,
		DataRange:       spec.DataRange,
		PivotTableRange: spec.Sheet + "!" + spec.Range,
		RowGrandTotals:  true,
		ColGrandTotals:  true,
		ShowDrill:       true,
		ShowRowHeaders:  true,
		ShowColHeaders:  true,
		ShowLastColumn:  true,
	}
	if spec.Style != "" {
		opts.PivotTableStyleName = spec.Style
	}

	for _, r := range spec.Rows {
		opts.Rows = append(opts.Rows, excelize.PivotTableField{Data: r, DefaultSubtotal: true})
	}
	for _, c := range spec.Columns {
		opts.Columns = append(opts.Columns, excelize.PivotTableField{Data: c, DefaultSubtotal: true})
	}
	for _, v := range spec.Values {
		opts.Data = append(opts.Data, excelize.PivotTableField{
			Data:     v.Field,
			Name:     v.Name,
			Subtotal: v.Subtotal,
		})
	}

	if err := b.f.AddPivotTable(opts); err != nil {
		return fmt.Errorf("could not add PivotTable %q: %w", spec.Name, err)
	}
	return nil
}
