package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ChartKind names the chart shapes pivotkit can insert.
type ChartKind string

const (
	ChartColumn ChartKind = "column"
	ChartBar    ChartKind = "bar"
	ChartPie    ChartKind = "pie"
	ChartLine   ChartKind = "line"
)

// ParseChartKind parses a chart kind name from the CLI or a batch file.
func ParseChartKind(s string) (ChartKind, error) {
	switch ChartKind(strings.ToLower(strings.TrimSpace(s))) {
	case ChartColumn:
		return ChartColumn, nil
	case ChartBar:
		return ChartBar, nil
	case ChartPie:
		return ChartPie, nil
	case ChartLine:
		return ChartLine, nil
	}
	return "", fmt.Errorf("unknown chart type %q — supported: column, bar, pie, line", s)
}

// Series is one chart data series. Categories and Values are absolute range
// references as produced by RangeRef; Name may be a literal or a range.
type Series struct {
	Name       string
	Categories string
	Values     string
}

// ChartSpec describes a chart bound to written cell ranges.
type ChartSpec struct {
	Kind        ChartKind
	Title       string
	XAxisTitle  string
	YAxisTitle  string
	Series      []Series
	ShowPercent bool // pie charts: percentage data labels
	Width       uint
	Height      uint
}

// AddChart inserts a chart anchored at the given cell.
func (b *Builder) AddChart(sheet, anchor string, spec ChartSpec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("chart %q has no data series", spec.Title)
	}

	chartType, err := chartType(spec.Kind)
	if err != nil {
		return err
	}

	series := make([]excelize.ChartSeries, len(spec.Series))
	for i, s := range spec.Series {
		series[i] = excelize.ChartSeries{
			Name:       s.Name,
			Categories: s.Categories,
			Values:     s.Values,
		}
	}

	width := spec.Width
	if width == 0 {
		width = 480
	}
	height := spec.Height
	if height == 0 {
		height = 290
	}

	chart := &excelize.Chart{
		Type:      chartType,
		Series:    series,
		Dimension: excelize.ChartDimension{Width: width, Height: height},
		Legend:    excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: spec.ShowPercent,
		},
	}
	if spec.Title != "" {
		chart.Title = []excelize.RichTextRun{{Text: spec.Title}}
	}
	if spec.XAxisTitle != "" {
		chart.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.XAxisTitle}}}
	}
	if spec.YAxisTitle != "" {
		chart.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.YAxisTitle}}}
	}

	if err := b.f.AddChart(sheet, anchor, chart); err != nil {
		return fmt.Errorf("could not add %s chart to %q: %w", spec.Kind, sheet, err)
	}
	return nil
}

func chartType(kind ChartKind) (excelize.ChartType, error) {
	switch kind {
	case ChartColumn:
		return excelize.Col, nil
	case ChartBar:
		return excelize.Bar, nil
	case ChartPie:
		return excelize.Pie, nil
	case ChartLine:
		return excelize.Line, nil
	}
	return 0, fmt.Errorf("unknown chart type %q", kind)
}
