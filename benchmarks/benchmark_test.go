package benchmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
	"github.com/klytics/pivotkit/internal/report"
)

var sampleXlsx = filepath.Join("..", "testdata", "sample.xlsx")

// --- Pivot benchmarks ---

func BenchmarkPivotCrossTab(b *testing.B) {
	ds := dataset.Sample()
	spec := pivot.Spec{
		Index:  "Region",
		Column: "Product",
		Values: "Sales",
		Aggs:   []pivot.Agg{pivot.Sum},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pivot.Compute(ds, spec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPivotStatsTable(b *testing.B) {
	ds := dataset.Sample()
	spec := pivot.Spec{
		Index:  "Product",
		Values: "Quantity",
		Aggs:   []pivot.Agg{pivot.Sum, pivot.Mean, pivot.Count},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pivot.Compute(ds, spec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPivotLargeDataset(b *testing.B) {
	ds := dataset.SampleN(10000)
	spec := pivot.Spec{
		Index:  "Region",
		Column: "Product",
		Values: "Sales",
		Aggs:   []pivot.Agg{pivot.Sum},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pivot.Compute(ds, spec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSummary(b *testing.B) {
	ds := dataset.Sample()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pivot.Summary(ds)
	}
}

// --- Dataset benchmarks ---

func BenchmarkSampleGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = dataset.Sample()
	}
}

// --- Workbook benchmarks ---

func BenchmarkXlsxRead(b *testing.B) {
	if _, err := os.Stat(sampleXlsx); os.IsNotExist(err) {
		b.Skip("sample.xlsx not found")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xlsx.ReadFile(sampleXlsx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuilderWriteSheet(b *testing.B) {
	grid := dataset.Sample().Grid()
	dir := b.TempDir()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := xlsx.NewBuilder()
		if _, err := w.AddSheet("Raw Data", grid); err != nil {
			b.Fatal(err)
		}
		if err := w.SaveAs(filepath.Join(dir, "bench.xlsx")); err != nil {
			b.Fatal(err)
		}
		w.Close()
	}
}

func BenchmarkBuildStatic(b *testing.B) {
	dir := b.TempDir()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := report.BuildStatic(report.Options{
			OutputPath: filepath.Join(dir, "bench_static.xlsx"),
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildLive(b *testing.B) {
	dir := b.TempDir()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := report.BuildLive(report.Options{
			OutputPath: filepath.Join(dir, "bench_live.xlsx"),
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}
