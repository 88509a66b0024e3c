package xlsx

import (
	"path/filepath"
	"testing"
)

func TestAddPivotTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pivot.xlsx")

	b := NewBuilder()
	defer b.Close()

	data, err := b.AddSheet("Raw Data", [][]string{
		{"Region", "Product", "Sales"},
		{"North", "A", "100"},
		{"South", "B", "200"},
		{"North", "B", "150"},
	})
	if err != nil {
		t.Fatal(err)
	}
	dest, err := b.AddSheet("Pivot", [][]string{{"Sales by Region"}})
	if err != nil {
		t.Fatal(err)
	}

	err = b.AddPivotTable(PivotTableSpec{
		Name:      "SalesByRegion",
		DataRange: PlainRange(data, 1, 1, 3, 4),
		Sheet:     dest,
		Range:     "A3:E10",
		Rows:      []string{"Region"},
		Columns:   []string{"Product"},
		Values: []PivotValue{{
			Field:    "Sales",
			Name:     "Sum of Sales",
			Subtotal: "Sum",
		}},
		Style: "PivotStyleMedium9",
	})
	if err != nil {
		t.Fatalf("AddPivotTable failed: %v", err)
	}

	if err := b.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	// The destination sheet must still be readable after the insert
	wb, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wb.GetSheet(dest); err != nil {
		t.Errorf("destination sheet missing: %v", err)
	}
}
