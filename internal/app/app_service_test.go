package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"retail-pos/internal/app"
	"retail-pos/internal/config"
	"retail-pos/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newWorkbookService(t *testing.T) app.ApplicationService {
	t.Helper()
	cfg := &config.Config{
		StoreBackend: config.BackendWorkbook,
		WorkbookPath: filepath.Join(t.TempDir(), "store.xlsx"),
		WriteRetries: 0,
	}
	svc, cleanup, err := app.Bootstrap(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	t.Cleanup(cleanup)
	return svc
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestCreateOrder_DropsZeroQuantityItems(t *testing.T) {
	svc := newWorkbookService(t)
	ctx := context.Background()

	code, err := svc.NextOrderCode(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("NextOrderCode: %v", err)
	}
	if code.OrderCode != "20250115-001" {
		t.Fatalf("first code = %s", code.OrderCode)
	}

	res, err := svc.CreateOrder(ctx, app.OrderRequest{
		OrderCode: code.OrderCode,
		OrderDate: "2025-01-15",
		Branch:    "Chi nhánh Quận 1",
		Items: []app.CartItemRequest{
			{ProductName: "A", ProductUnit: "Cái", ProductPrice: d("100"), Quantity: d("2")},
			{ProductName: "B", ProductUnit: "Cái", ProductPrice: d("50"), Quantity: d("0")},
			{ProductName: "C", ProductUnit: "Kg", ProductPrice: d("10"), Quantity: d("-3")},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.Lines != 1 || !res.Total.Equal(d("200")) {
		t.Errorf("result = %+v", res)
	}

	lines := svc.ListSaleLines(ctx, code.OrderCode)
	if len(lines.Lines) != 1 || lines.Lines[0].Product != "A" {
		t.Errorf("lines = %+v", lines.Lines)
	}

	orders := svc.ListOrders(ctx, core.OrderFilter{Branch: "Chi nhánh Quận 1"})
	if len(orders.Orders) != 1 || orders.Degraded {
		t.Errorf("orders = %+v", orders)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc := newWorkbookService(t)
	_, err := svc.CreateOrder(context.Background(), app.OrderRequest{
		OrderCode: "20250115-001",
		OrderDate: "2025-01-15",
		Branch:    "Chi nhánh Quận 1",
		Items:     []app.CartItemRequest{{ProductName: "A", ProductUnit: "Cái", ProductPrice: d("1"), Quantity: d("0")}},
	})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestUpdateOrder_RenamesCode(t *testing.T) {
	svc := newWorkbookService(t)
	ctx := context.Background()

	req := app.OrderRequest{
		OrderCode: "20250115-001",
		OrderDate: "2025-01-15",
		Branch:    "Chi nhánh Quận 1",
		Items:     []app.CartItemRequest{{ProductName: "A", ProductUnit: "Cái", ProductPrice: d("100"), Quantity: d("1")}},
	}
	if _, err := svc.CreateOrder(ctx, req); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	req.PreviousCode = req.OrderCode
	req.OrderCode = "20250115-005"
	req.Total = ptr(d("90"))
	if _, err := svc.UpdateOrder(ctx, req); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	orders := svc.ListOrders(ctx, core.OrderFilter{}).Orders
	if len(orders) != 1 || orders[0].OrderCode != "20250115-005" || !orders[0].Total.Equal(d("90")) {
		t.Errorf("orders = %+v", orders)
	}

	if _, err := svc.DeleteOrder(ctx, "20250115-005"); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := svc.DeleteOrder(ctx, "20250115-005"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListProducts_FiltersAndUnits(t *testing.T) {
	svc := newWorkbookService(t)
	ctx := context.Background()

	for _, p := range []app.ProductRequest{
		{Name: "Áo", Unit: "Cái", Price: ptr(d("100"))},
		{Name: "Gạo", Unit: "Kg", Price: ptr(d("20"))},
		{Name: "Giày", Unit: "Đôi", Price: ptr(d("900"))},
	} {
		if err := svc.AddProduct(ctx, p); err != nil {
			t.Fatalf("AddProduct: %v", err)
		}
	}

	res := svc.ListProducts(ctx, app.ProductQuery{MaxPrice: ptr(d("100"))})
	if len(res.Products) != 2 {
		t.Errorf("filtered products = %+v", res.Products)
	}
	if len(res.Units) != 3 {
		t.Errorf("units should come from the unfiltered catalog, got %v", res.Units)
	}
}

func TestSalesReport_InvalidRange(t *testing.T) {
	svc := newWorkbookService(t)
	_, err := svc.SalesReport(context.Background(), core.ReportFilter{From: "2025-02-01", To: "2025-01-01"})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestBootstrap_MissingCredentialsDegrades(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendSheets}
	svc, cleanup, err := app.Bootstrap(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	if res := svc.ListBranches(ctx); !res.Degraded || len(res.Branches) != 4 {
		t.Errorf("branches = %+v", res)
	}
	if err := svc.AddProduct(ctx, app.ProductRequest{Name: "A", Unit: "Cái", Price: ptr(d("1"))}); err == nil {
		t.Error("writes must fail without credentials")
	}
}
