package dataset

import (
	"strconv"
	"time"
)

// The demo sales data: 100 daily rows with cycling regions, products, and
// measures. Region and Product cycle with period 4, the measures with period 8,
// so aggregates are stable and easy to verify by hand.
var (
	sampleRegions    = []string{"North", "South", "East", "West"}
	sampleProducts   = []string{"Product A", "Product B", "Product C", "Product D"}
	sampleSales      = []int{100, 150, 200, 175, 120, 180, 210, 190}
	sampleQuantities = []int{10, 15, 20, 18, 12, 16, 22, 19}
)

// SampleRows is the default number of rows in the demo data set.
const SampleRows = 100

// Sample returns the built-in demo sales data set.
func Sample() *Dataset {
	return SampleN(SampleRows)
}

// SampleN returns the demo sales data set with n rows, one per day starting
// 2024-01-01.
func SampleN(n int) *Dataset {
	if n < 0 {
		n = 0
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	ds := &Dataset{
		Columns: []string{"Date", "Region", "Product", "Sales", "Quantity"},
		Source:  "sample",
	}

	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, map[string]string{
			"Date":     start.AddDate(0, 0, i).Format("2006-01-02"),
			"Region":   sampleRegions[i%len(sampleRegions)],
			"Product":  sampleProducts[i%len(sampleProducts)],
			"Sales":    strconv.Itoa(sampleSales[i%len(sampleSales)]),
			"Quantity": strconv.Itoa(sampleQuantities[i%len(sampleQuantities)]),
		})
	}

	return ds
}
