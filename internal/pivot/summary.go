package pivot

import "github.com/klytics/pivotkit/internal/dataset"

// ColumnStats holds the basic aggregates for one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary computes sum, mean, min, max, and count for every numeric column in
// the dataset, in column order.
func Summary(ds *dataset.Dataset) []ColumnStats {
	var stats []ColumnStats

	for _, col := range ds.Columns {
		var values []float64
		for _, row := range ds.Rows {
			if v, ok := parseCell(row[col]); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		cs := ColumnStats{
			Column: col,
			Count:  len(values),
			Min:    values[0],
			Max:    values[0],
		}
		for _, v := range values {
			cs.Sum += v
			if v < cs.Min {
				cs.Min = v
			}
			if v > cs.Max {
				cs.Max = v
			}
		}
		cs.Mean = cs.Sum / float64(len(values))
		stats = append(stats, cs)
	}

	return stats
}
