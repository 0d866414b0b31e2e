package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is a decoded A1 range. Columns and rows are 1-based; a zero EndCol or
// EndRow means the range is open in that direction ("A:C", "B2:B").
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange decodes an A1 range such as "Products!A:C", "chinhanh!B2:B1000",
// "Products!A5:C5" or a bare sheet name.
func ParseRange(a1 string) (Range, error) {
	a1 = strings.TrimSpace(a1)
	if a1 == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	sheet, cells := a1, ""
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		sheet, cells = a1[:i], a1[i+1:]
	}
	sheet = strings.Trim(sheet, "'")
	if sheet == "" {
		return Range{}, fmt.Errorf("range %q has no sheet name", a1)
	}

	r := Range{Sheet: sheet, StartCol: 1, StartRow: 1}
	if cells == "" {
		return r, nil
	}

	from, to, hasTo := strings.Cut(cells, ":")
	col, row, err := splitRef(from)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", a1, err)
	}
	if col > 0 {
		r.StartCol = col
	}
	if row > 0 {
		r.StartRow = row
	}

	if !hasTo {
		// Single cell.
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, nil
	}

	col, row, err = splitRef(to)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", a1, err)
	}
	r.EndCol, r.EndRow = col, row
	if r.EndCol != 0 && r.EndCol < r.StartCol || r.EndRow != 0 && r.EndRow < r.StartRow {
		return Range{}, fmt.Errorf("range %q is inverted", a1)
	}
	return r, nil
}

// TopLeft returns the cell name of the range's first cell, e.g. "A5".
func (r Range) TopLeft() string {
	name, _ := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	return name
}

// Clip cuts a full-sheet row grid down to the range. Trailing empty cells and
// trailing empty rows are dropped.
func (r Range) Clip(rows [][]string) [][]string {
	last := len(rows)
	if r.EndRow > 0 && r.EndRow < last {
		last = r.EndRow
	}

	var out [][]string
	for i := r.StartRow - 1; i < last; i++ {
		row := rows[i]
		end := len(row)
		if r.EndCol > 0 && r.EndCol < end {
			end = r.EndCol
		}
		var cells []string
		if r.StartCol-1 < end {
			cells = append([]string{}, row[r.StartCol-1:end]...)
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		if len(cells) == 0 {
			cells = nil
		}
		out = append(out, cells)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// splitRef splits "B12" into column 2 and row 12. Either part may be absent.
func splitRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	letters, digits := ref[:i], ref[i:]
	if letters == "" && digits == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	if letters != "" {
		if col, err = excelize.ColumnNameToNumber(letters); err != nil {
			return 0, 0, err
		}
	}
	if digits != "" {
		if row, err = strconv.Atoi(digits); err != nil || row < 1 {
			return 0, 0, fmt.Errorf("invalid row in %q", ref)
		}
	}
	return col, row, nil
}
