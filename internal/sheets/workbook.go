package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Gateway backed by a local .xlsx file. It gives the service an
// offline store with the same row semantics as the Sheets API. With an empty
// path the workbook lives only in memory.
//
// Input modes are ignored: values are stored with their Go types.
type Workbook struct {
	mu   sync.Mutex
	file *excelize.File
	path string
}

// OpenWorkbook opens the workbook at path, creating a new one if the file does
// not exist yet.
func OpenWorkbook(path string) (*Workbook, error) {
	if path == "" {
		return &Workbook{file: excelize.NewFile()}, nil
	}

	f, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create workbook directory: %w", err)
		}
		return &Workbook{file: excelize.NewFile(), path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// EnsureSheet creates sheet with a header row if it does not exist. The
// default empty sheet of a new workbook is removed once a named sheet exists.
func (w *Workbook) EnsureSheet(name string, header []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", name, err)
	}
	if idx == -1 {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if len(header) > 0 {
			row := make([]any, len(header))
			for i, h := range header {
				row[i] = h
			}
			if err := w.file.SetSheetRow(name, "A1", &row); err != nil {
				return fmt.Errorf("failed to write header of %s: %w", name, err)
			}
		}
	}

	const defaultSheet = "Sheet1"
	if name != defaultSheet {
		if rows, err := w.file.GetRows(defaultSheet); err == nil && len(rows) == 0 {
			if err := w.file.DeleteSheet(defaultSheet); err != nil {
				return fmt.Errorf("failed to remove default sheet: %w", err)
			}
		}
	}
	return w.save()
}

// Read implements Gateway.
func (w *Workbook) Read(ctx context.Context, rng string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.file.GetRows(r.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return r.Clip(rows), nil
}

// Append implements Gateway.
func (w *Workbook) Append(ctx context.Context, rng string, rows [][]any, _ InputMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	existing, err := w.file.GetRows(r.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}

	// The table ends at the last row that has a value inside the range's columns.
	next := r.StartRow
	cols := Range{Sheet: r.Sheet, StartCol: r.StartCol, StartRow: 1, EndCol: r.EndCol}
	for i, row := range cols.Clip(existing) {
		if len(row) > 0 && i+2 > next {
			next = i + 2
		}
	}

	if err := w.writeRows(r.Sheet, r.StartCol, next, rows); err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return w.save()
}

// Update implements Gateway.
func (w *Workbook) Update(ctx context.Context, rng string, rows [][]any, _ InputMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if idx, _ := w.file.GetSheetIndex(r.Sheet); idx == -1 {
		return fmt.Errorf("failed to update %s: sheet %s does not exist", rng, r.Sheet)
	}
	if err := w.writeRows(r.Sheet, r.StartCol, r.StartRow, rows); err != nil {
		return fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return w.save()
}

// DeleteRows implements Gateway.
func (w *Workbook) DeleteRows(ctx context.Context, sheet string, start, end int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if start < 0 || end <= start {
		return fmt.Errorf("invalid row range [%d, %d)", start, end)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if idx, _ := w.file.GetSheetIndex(sheet); idx == -1 {
		return fmt.Errorf("failed to delete rows: sheet %s does not exist", sheet)
	}
	// Index i is spreadsheet row i+1; remove from the bottom so positions hold.
	for row := end; row > start; row-- {
		if err := w.file.RemoveRow(sheet, row); err != nil {
			return fmt.Errorf("failed to delete row %d of %s: %w", row, sheet, err)
		}
	}
	return w.save()
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *Workbook) writeRows(sheet string, col, row int, rows [][]any) error {
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return err
		}
		values := values
		if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// save persists the workbook when it is file-backed. Callers hold w.mu.
func (w *Workbook) save() error {
	if w.path == "" {
		return nil
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
