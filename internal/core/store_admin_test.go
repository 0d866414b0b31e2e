package core_test

import (
	"context"
	"testing"

	"retail-pos/internal/core"
	"retail-pos/internal/sheets"
)

func TestSeedStore_EmptySheets(t *testing.T) {
	wb, err := sheets.OpenWorkbook("")
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })
	layout := core.DefaultLayout
	for name := range layout.Headers() {
		if err := wb.EnsureSheet(name, nil); err != nil {
			t.Fatalf("EnsureSheet: %v", err)
		}
	}

	ctx := context.Background()
	report, err := core.SeedStore(ctx, wb, layout)
	if err != nil {
		t.Fatalf("SeedStore: %v", err)
	}
	if report.Headers != 4 || report.Products != 5 || report.Branches != 4 {
		t.Errorf("report = %+v", report)
	}

	catalog := core.NewCatalogService(wb, layout, nopLog())
	if res := catalog.ListProducts(ctx); res.Degraded || len(res.Data) != 5 {
		t.Errorf("products = %+v", res)
	}
	branches := catalog.ListBranches(ctx)
	if branches.Degraded || len(branches.Data) != 4 || branches.Data[0].Name != "Chi nhánh Quận 1" {
		t.Errorf("branches = %+v", branches)
	}

	again, err := core.SeedStore(ctx, wb, layout)
	if err != nil {
		t.Fatalf("second SeedStore: %v", err)
	}
	if again != (core.SeedReport{}) {
		t.Errorf("second seed should be a no-op, got %+v", again)
	}
}

func TestSeedStore_KeepsExistingCatalog(t *testing.T) {
	wb := newStore(t)
	layout := core.DefaultLayout
	seed(t, wb, "Products!A:C", []any{"Áo", "Cái", 100})

	report, err := core.SeedStore(context.Background(), wb, layout)
	if err != nil {
		t.Fatalf("SeedStore: %v", err)
	}
	if report.Headers != 0 || report.Products != 0 || report.Branches != 4 {
		t.Errorf("report = %+v", report)
	}
}

func TestInspectStore(t *testing.T) {
	wb := newStore(t)
	seed(t, wb, "Products!A:C", []any{"Áo", "Cái", 100}, []any{"Gạo", "Kg", 20})
	seed(t, wb, "dshoadon!A:D", []any{"20250115-001", "2025-01-15", "Q1", 100})

	got := core.InspectStore(context.Background(), wb, core.DefaultLayout)
	want := map[string]int{"Products": 2, "chinhanh": 0, "dshoadon": 1, "Sales": 0}
	if len(got) != len(want) {
		t.Fatalf("got %d tables", len(got))
	}
	for _, st := range got {
		if st.Err != nil {
			t.Errorf("%s: %v", st.Sheet, st.Err)
			continue
		}
		if st.Rows != want[st.Sheet] {
			t.Errorf("%s rows = %d, want %d", st.Sheet, st.Rows, want[st.Sheet])
		}
	}

	for _, st := range core.InspectStore(context.Background(), sheets.Unavailable(nil), core.DefaultLayout) {
		if st.Err == nil {
			t.Errorf("%s: expected error from unavailable store", st.Sheet)
		}
	}
}
