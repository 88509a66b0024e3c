package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
)

func TestBuildStaticDefaults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "static.xlsx")

	res, err := BuildStatic(Options{OutputPath: out})
	if err != nil {
		t.Fatalf("BuildStatic failed: %v", err)
	}

	if res.DataRows != 100 {
		t.Errorf("DataRows = %d, want 100", res.DataRows)
	}
	if res.Sheets != 3 {
		t.Errorf("Sheets = %d, want 3", res.Sheets)
	}
	if res.Charts != 3 {
		t.Errorf("Charts = %d, want 3", res.Charts)
	}

	wb, err := xlsx.ReadFile(out)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}

	for _, name := range []string{"Raw Data", "Pivot - Sales by Region", "Pivot - Product Stats"} {
		if _, err := wb.GetSheet(name); err != nil {
			t.Errorf("missing sheet: %v", err)
		}
	}

	raw, _ := wb.GetSheet("Raw Data")
	if len(raw.Rows) != 101 {
		t.Errorf("raw sheet has %d rows, want 101", len(raw.Rows))
	}

	// The demo data pairs each region with one product, so the cross-tab is
	// diagonal: East sells only Product C.
	sales, _ := wb.GetSheet("Pivot - Sales by Region")
	if sales.Rows[0][0] != "Region" || sales.Rows[0][3] != "Product C" {
		t.Fatalf("unexpected pivot header: %v", sales.Rows[0])
	}
	east := sales.Rows[1]
	if east[0] != "East" || east[3] != "5120" {
		t.Errorf("East row = %v, want Product C sum 5120", east)
	}
	if east[1] != "0" {
		t.Errorf("East/Product A = %q, want fill value 0", east[1])
	}

	stats, _ := wb.GetSheet("Pivot - Product Stats")
	if stats.Rows[0][1] != "Sum of Quantity" {
		t.Errorf("unexpected stats header: %v", stats.Rows[0])
	}
	// Product A: 13 rows of 10 plus 12 rows of 12
	if stats.Rows[1][0] != "Product A" || stats.Rows[1][1] != "274" {
		t.Errorf("unexpected Product A stats: %v", stats.Rows[1])
	}
}

func TestBuildStaticCustomPivot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "custom.xlsx")

	res, err := BuildStatic(Options{
		OutputPath: out,
		Pivots: []PivotRequest{{
			Index:  "Region",
			Values: "Sales",
			Agg:    "mean",
			Chart:  "none",
		}},
	})
	if err != nil {
		t.Fatalf("BuildStatic failed: %v", err)
	}

	if res.Sheets != 2 {
		t.Errorf("Sheets = %d, want 2", res.Sheets)
	}
	if res.Charts != 0 {
		t.Errorf("Charts = %d, want 0 for chart: none", res.Charts)
	}

	wb, err := xlsx.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := wb.GetSheet("Pivot - Sales by Region")
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Rows[0][1] != "Mean of Sales" {
		t.Errorf("unexpected header: %v", sheet.Rows[0])
	}
}

func TestBuildStaticUnknownColumn(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bad.xlsx")
	_, err := BuildStatic(Options{
		OutputPath: out,
		Pivots:     []PivotRequest{{Index: "Nope", Values: "Sales"}},
	})
	if err == nil {
		t.Fatal("expected error for unknown pivot column")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("failed build should not leave an output file")
	}
}

func writeInputWorkbook(t *testing.T, path string) {
	t.Helper()
	b := xlsx.NewBuilder()
	defer b.Close()
	_, err := b.AddSheet("Data", [][]string{
		{"Region", "Product", "Sales"},
		{"North", "A", "100"},
		{"South", "B", "200"},
		{"North", "B", "150"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestBuildUpdate(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.xlsx")
	out := filepath.Join(tmp, "input_pivot.xlsx")
	writeInputWorkbook(t, in)

	res, err := BuildUpdate(Options{InputPath: in, OutputPath: out})
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}
	if res.OutputPath != out {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, out)
	}
	if res.DataRows != 3 {
		t.Errorf("DataRows = %d, want 3", res.DataRows)
	}

	// The original workbook is untouched
	orig, err := xlsx.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(orig.Sheets) != 1 {
		t.Errorf("input workbook gained sheets: %v", orig.SheetNames())
	}

	wb, err := xlsx.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wb.GetSheet("Data"); err != nil {
		t.Errorf("original sheet missing from output: %v", err)
	}
	np, err := wb.GetSheet("New Pivot")
	if err != nil {
		t.Fatalf("pivot sheet missing: %v", err)
	}

	// Default request groups Sales by the second column (Product)
	if np.Rows[0][0] != "Product" || np.Rows[0][1] != "Sum of Sales" {
		t.Errorf("unexpected pivot header: %v", np.Rows[0])
	}
	if np.Rows[1][0] != "A" || np.Rows[1][1] != "100" {
		t.Errorf("unexpected row: %v", np.Rows[1])
	}
	if np.Rows[2][0] != "B" || np.Rows[2][1] != "350" {
		t.Errorf("unexpected row: %v", np.Rows[2])
	}
}

func TestBuildUpdateInPlace(t *testing.T) {
	in := filepath.Join(t.TempDir(), "input.xlsx")
	writeInputWorkbook(t, in)

	res, err := BuildUpdate(Options{InputPath: in})
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}
	if res.OutputPath != in {
		t.Errorf("expected in-place save to %q, got %q", in, res.OutputPath)
	}

	wb, err := xlsx.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wb.GetSheet("New Pivot"); err != nil {
		t.Errorf("pivot sheet missing after in-place update: %v", err)
	}
}

func TestBuildUpdateRequiresInput(t *testing.T) {
	if _, err := BuildUpdate(Options{}); err == nil {
		t.Error("expected error without input path")
	}
}

func TestBuildUpdateNoNumericColumn(t *testing.T) {
	in := filepath.Join(t.TempDir(), "text.xlsx")

	b := xlsx.NewBuilder()
	if _, err := b.AddSheet("Data", [][]string{
		{"Name", "Note"},
		{"x", "hello"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := b.SaveAs(in); err != nil {
		t.Fatal(err)
	}
	b.Close()

	if _, err := BuildUpdate(Options{InputPath: in}); err == nil {
		t.Error("expected error when nothing can be aggregated")
	}
}

func TestBuildLiveDefaults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "live.xlsx")

	res, err := BuildLive(Options{OutputPath: out, PivotStyle: "PivotStyleMedium9"})
	if err != nil {
		t.Fatalf("BuildLive failed: %v", err)
	}

	if res.Sheets != 3 {
		t.Errorf("Sheets = %d, want 3", res.Sheets)
	}
	if res.PivotTables != 2 {
		t.Errorf("PivotTables = %d, want 2", res.PivotTables)
	}
	if res.Charts != 2 {
		t.Errorf("Charts = %d, want 2", res.Charts)
	}

	wb, err := xlsx.ReadFile(out)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	for _, name := range []string{"Raw Data", "Pivot - Sales by Region", "Pivot - Product Stats"} {
		if _, err := wb.GetSheet(name); err != nil {
			t.Errorf("missing sheet: %v", err)
		}
	}
}

func TestBuildLiveCustomPivot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "live_custom.xlsx")

	res, err := BuildLive(Options{
		OutputPath: out,
		Pivots: []PivotRequest{{
			Index:  "Product",
			Values: "Quantity",
			Agg:    "count",
			Chart:  "none",
		}},
	})
	if err != nil {
		t.Fatalf("BuildLive failed: %v", err)
	}
	if res.PivotTables != 1 {
		t.Errorf("PivotTables = %d, want 1", res.PivotTables)
	}
	if res.Charts != 0 {
		t.Errorf("Charts = %d, want 0", res.Charts)
	}
}

func TestPivotRequestSheetName(t *testing.T) {
	r := PivotRequest{Index: "Region", Values: "Sales"}
	if got := r.sheetName(); got != "Pivot - Sales by Region" {
		t.Errorf("sheetName = %q", got)
	}
	r.Sheet = "My Pivot"
	if got := r.sheetName(); got != "My Pivot" {
		t.Errorf("sheetName = %q", got)
	}
}

func TestPivotRequestChartTitle(t *testing.T) {
	r := PivotRequest{Index: "Region", Values: "Sales"}
	if got := r.chartTitle(pivot.Sum); got != "Sum of Sales by Region" {
		t.Errorf("chartTitle = %q", got)
	}
	r.Column = "Product"
	if got := r.chartTitle(pivot.Mean); got != "Mean of Sales by Region and Product" {
		t.Errorf("chartTitle = %q", got)
	}
	r.Title = "Override"
	if got := r.chartTitle(pivot.Sum); got != "Override" {
		t.Errorf("chartTitle = %q", got)
	}
}
