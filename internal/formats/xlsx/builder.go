package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is the sheet name length Excel allows.
const maxSheetName = 31

// Builder assembles an output workbook: sheets of cells, charts, and native
// PivotTables. Numeric-looking cells are written as numbers so that charts and
// pivot caches see real values rather than text.
type Builder struct {
	f           *excelize.File
	fresh       bool // created via NewBuilder, default sheet not yet renamed
	headerStyle int
}

// NewBuilder starts a new empty workbook.
func NewBuilder() *Builder {
	return &Builder{f: excelize.NewFile(), fresh: true}
}

// OpenBuilder opens an existing workbook for modification.
func OpenBuilder(path string) (*Builder, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return &Builder{f: f}, nil
}

// Close releases the underlying file resources.
func (b *Builder) Close() error {
	return b.f.Close()
}

// HasSheet reports whether the workbook already contains the named sheet.
func (b *Builder) HasSheet(name string) bool {
	idx, err := b.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// AddSheet creates a sheet and fills it with the given rows, treating the
// first row as a header. The returned name is the sanitized (and possibly
// deduplicated) sheet name actually used.
func (b *Builder) AddSheet(name string, rows [][]string) (string, error) {
	name = b.uniqueName(SanitizeSheetName(name))

	if b.fresh {
		// Rename the default sheet instead of leaving an empty Sheet1 behind
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("could not rename sheet: %w", err)
		}
		b.fresh = false
	} else {
		if _, err := b.f.NewSheet(name); err != nil {
			return "", fmt.Errorf("could not create sheet %q: %w", name, err)
		}
	}

	widths := make([]int, 0)
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return "", fmt.Errorf("invalid cell coordinates: %w", err)
			}

			// Numbers go in as numbers so chart series and pivot caches work
			var value any = cell
			if rowIdx > 0 {
				if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && cell != "" {
					value = f
				}
			}
			if err := b.f.SetCellValue(name, cellName, value); err != nil {
				return "", fmt.Errorf("could not set cell %s: %w", cellName, err)
			}

			for len(widths) <= colIdx {
				widths = append(widths, 0)
			}
			if len(cell) > widths[colIdx] {
				widths[colIdx] = len(cell)
			}
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		if err := b.boldHeader(name, len(rows[0])); err != nil {
			return "", err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if w < 8 {
			w = 8
		}
		if w > 40 {
			w = 40
		}
		_ = b.f.SetColWidth(name, col, col, float64(w)+2)
	}

	return name, nil
}

func (b *Builder) boldHeader(sheet string, cols int) error {
	if b.headerStyle == 0 {
		style, err := b.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("could not create header style: %w", err)
		}
		b.headerStyle = style
	}

	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return b.f.SetCellStyle(sheet, "A1", end, b.headerStyle)
}

// Save writes the workbook back to the path it was opened from.
func (b *Builder) Save() error {
	if err := b.f.Save(); err != nil {
		return fmt.Errorf("could not save workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path.
func (b *Builder) SaveAs(path string) error {
	if err := b.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s — close the file in Excel before re-running: %w", path, err)
	}
	return nil
}

// uniqueName appends a numeric suffix until the name is unused.
func (b *Builder) uniqueName(name string) string {
	if !b.HasSheet(name) || b.fresh {
		return name
	}
	for i := 2; ; i++ {
		suffix := " " + strconv.Itoa(i)
		candidate := name
		if len(candidate)+len(suffix) > maxSheetName {
			candidate = candidate[:maxSheetName-len(suffix)]
		}
		candidate += suffix
		if !b.HasSheet(candidate) {
			return candidate
		}
	}
}

// SanitizeSheetName strips the characters Excel forbids in sheet names and
// enforces the 31-character limit.
func SanitizeSheetName(name string) string {
	replacer := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "(", "]", ")")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "Sheet"
	}
	if len(name) > maxSheetName {
		name = strings.TrimSpace(name[:maxSheetName])
	}
	return name
}

// CellName converts 1-based coordinates to a cell name like "H2".
func CellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// RangeRef builds an absolute chart range reference like 'My Sheet'!$A$2:$A$10.
func RangeRef(sheet string, startCol, startRow, endCol, endRow int) string {
	start, _ := excelize.CoordinatesToCellName(startCol, startRow, true)
	end, _ := excelize.CoordinatesToCellName(endCol, endRow, true)
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	if start == end {
		return quoted + "!" + start
	}
	return quoted + "!" + start + ":" + end
}

// PlainRange builds an unquoted range like My Sheet!A1:E101. Pivot table
// options take this form rather than the quoted chart form.
func PlainRange(sheet string, startCol, startRow, endCol, endRow int) string {
	start, _ := excelize.CoordinatesToCellName(startCol, startRow)
	end, _ := excelize.CoordinatesToCellName(endCol, endRow)
	return sheet + "!" + start + ":" + end
}
