package core

import (
	"context"
	"fmt"

	"retail-pos/internal/sheets"
)

// SeedReport counts the rows SeedStore wrote.
type SeedReport struct {
	Headers  int
	Products int
	Branches int
}

// SeedStore prepares an empty store: it writes missing header rows, and
// fills the catalog and the branch list with the built-in defaults when they
// hold no data. Tables that already have data are left alone.
func SeedStore(ctx context.Context, gw sheets.Gateway, layout Layout) (SeedReport, error) {
	var report SeedReport
	headers := layout.Headers()

	for _, t := range []struct {
		sheet, rng string
	}{
		{layout.ProductSheet, layout.productRange()},
		{layout.SummarySheet, layout.summaryRange()},
		{layout.DetailSheet, layout.detailRange()},
	} {
		rows, err := gw.Read(ctx, t.rng)
		if err != nil {
			return report, fmt.Errorf("failed to read %s: %w", t.sheet, err)
		}
		if len(rows) > 0 {
			continue
		}
		if err := gw.Update(ctx, t.sheet+"!A1", [][]any{toRow(headers[t.sheet])}, sheets.Raw); err != nil {
			return report, fmt.Errorf("failed to write %s header: %w", t.sheet, err)
		}
		report.Headers++
	}

	products, err := gw.Read(ctx, layout.productRange())
	if err != nil {
		return report, fmt.Errorf("failed to read products: %w", err)
	}
	if len(products) <= 1 {
		rows := make([][]any, 0, 5)
		for _, p := range fallbackProducts() {
			rows = append(rows, []any{p.Name, p.Unit, number(p.Price)})
		}
		if err := gw.Append(ctx, layout.productRange(), rows, sheets.Raw); err != nil {
			return report, fmt.Errorf("failed to seed products: %w", err)
		}
		report.Products = len(rows)
	}

	branches, err := gw.Read(ctx, layout.branchRange())
	if err != nil {
		return report, fmt.Errorf("failed to read branches: %w", err)
	}
	if len(branches) == 0 {
		header, err := gw.Read(ctx, layout.BranchSheet+"!A1:B1")
		if err != nil {
			return report, fmt.Errorf("failed to read branch header: %w", err)
		}
		if len(header) == 0 {
			if err := gw.Update(ctx, layout.BranchSheet+"!A1", [][]any{toRow(headers[layout.BranchSheet])}, sheets.Raw); err != nil {
				return report, fmt.Errorf("failed to write %s header: %w", layout.BranchSheet, err)
			}
			report.Headers++
		}

		fb := fallbackBranches()
		rows := make([][]any, 0, len(fb))
		for _, b := range fb {
			rows = append(rows, []any{b.ID, b.Name})
		}
		rng := fmt.Sprintf("%s!A2:B%d", layout.BranchSheet, len(rows)+1)
		if err := gw.Update(ctx, rng, rows, sheets.Raw); err != nil {
			return report, fmt.Errorf("failed to seed branches: %w", err)
		}
		report.Branches = len(rows)
	}
	return report, nil
}

// TableStatus is the state of one table as seen by InspectStore.
type TableStatus struct {
	Sheet string
	// Rows counts data rows, excluding the header.
	Rows int
	Err  error
}

// InspectStore reads every table once and reports its data row count or the
// read error. It never fails as a whole so that every table gets checked.
func InspectStore(ctx context.Context, gw sheets.Gateway, layout Layout) []TableStatus {
	tables := []struct {
		sheet, rng string
		header     bool
	}{
		{layout.ProductSheet, layout.productRange(), true},
		{layout.BranchSheet, layout.branchRange(), false},
		{layout.SummarySheet, layout.summaryRange(), true},
		{layout.DetailSheet, layout.detailRange(), true},
	}

	out := make([]TableStatus, 0, len(tables))
	for _, t := range tables {
		st := TableStatus{Sheet: t.sheet}
		rows, err := gw.Read(ctx, t.rng)
		switch {
		case err != nil:
			st.Err = err
		case t.header && len(rows) > 0:
			st.Rows = len(rows) - 1
		default:
			st.Rows = len(rows)
		}
		out = append(out, st)
	}
	return out
}

func toRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
