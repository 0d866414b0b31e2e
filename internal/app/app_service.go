package app

import (
	"context"
	"fmt"

	"retail-pos/internal/core"
)

type appService struct {
	catalog   core.CatalogService
	codes     core.OrderCodeGenerator
	ledger    core.SalesLedger
	reporting core.ReportingService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	codes core.OrderCodeGenerator,
	ledger core.SalesLedger,
	reporting core.ReportingService,
) ApplicationService {
	return &appService{
		catalog:   catalog,
		codes:     codes,
		ledger:    ledger,
		reporting: reporting,
	}
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context, q ProductQuery) *ProductListResult {
	res := s.catalog.ListProducts(ctx)
	products := core.FilterProducts(res.Data, core.ProductFilter{
		Search:   q.Search,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Units:    q.Units,
	})
	return &ProductListResult{
		Availability: availability(res),
		Products:     products,
		Units:        core.ProductUnits(res.Data),
	}
}

func (s *appService) AddProduct(ctx context.Context, req ProductRequest) error {
	return s.catalog.AddProduct(ctx, core.ProductInput{Name: req.Name, Unit: req.Unit, Price: req.Price})
}

func (s *appService) UpdateProduct(ctx context.Context, id int, req ProductRequest) (*core.Product, error) {
	return s.catalog.UpdateProduct(ctx, id, core.ProductInput{Name: req.Name, Unit: req.Unit, Price: req.Price})
}

func (s *appService) DeleteProduct(ctx context.Context, id int) error {
	return s.catalog.DeleteProduct(ctx, id)
}

func (s *appService) ListBranches(ctx context.Context) *BranchListResult {
	res := s.catalog.ListBranches(ctx)
	return &BranchListResult{Availability: availability(res), Branches: res.Data}
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, f core.OrderFilter) *OrderListResult {
	res := s.ledger.ListOrders(ctx)
	return &OrderListResult{Availability: availability(res), Orders: core.FilterOrders(res.Data, f)}
}

func (s *appService) ListSaleLines(ctx context.Context, orderCode string) *SaleLineListResult {
	res := s.ledger.ListSaleLines(ctx)
	lines := res.Data
	if orderCode != "" {
		lines = core.SaleLinesByCode(lines, orderCode)
	}
	return &SaleLineListResult{Availability: availability(res), Lines: lines}
}

func (s *appService) NextOrderCode(ctx context.Context, date string) (*OrderCodeResult, error) {
	res, err := s.codes.Generate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &OrderCodeResult{Availability: availability(res), OrderCode: res.Data}, nil
}

func (s *appService) CreateOrder(ctx context.Context, req OrderRequest) (*OrderWriteResult, error) {
	in, err := orderInput(req)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CreateOrder(ctx, in); err != nil {
		return nil, err
	}
	return &OrderWriteResult{OrderCode: in.OrderCode, Lines: len(in.Lines), Total: in.Total}, nil
}

func (s *appService) UpdateOrder(ctx context.Context, req OrderRequest) (*OrderWriteResult, error) {
	in, err := orderInput(req)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.UpdateOrder(ctx, in, req.PreviousCode); err != nil {
		return nil, err
	}
	return &OrderWriteResult{OrderCode: in.OrderCode, Lines: len(in.Lines), Total: in.Total}, nil
}

func (s *appService) DeleteOrder(ctx context.Context, code string) (*OrderDeleteResult, error) {
	n, err := s.ledger.DeleteOrder(ctx, code)
	if err != nil {
		return nil, err
	}
	return &OrderDeleteResult{OrderCode: code, RowsDeleted: n}, nil
}

// orderInput runs the submitted items through a Cart so that quantities are
// rounded and clamped the same way as in the order form, then drops the
// zero-quantity items.
func orderInput(req OrderRequest) (core.OrderInput, error) {
	var cart core.Cart
	for i, it := range req.Items {
		cart.Add(core.Product{Name: it.ProductName, Unit: it.ProductUnit, Price: it.ProductPrice}, it.Note)
		cart.UpdateQuantity(i, it.Quantity)
	}

	lines := cart.Lines()
	if len(lines) == 0 {
		return core.OrderInput{}, &core.ValidationError{
			Message:  "Vui lòng thêm sản phẩm vào đơn hàng",
			Received: map[string]any{"orderCode": req.OrderCode, "cartItems": len(req.Items)},
		}
	}

	total := cart.Total()
	if req.Total != nil {
		total = *req.Total
	}
	return core.OrderInput{
		OrderCode: req.OrderCode,
		OrderDate: req.OrderDate,
		Branch:    req.Branch,
		Lines:     lines,
		Total:     total,
	}, nil
}

// ── Reports ──────────────────────────────────────────────────────────────────

func (s *appService) SalesReport(ctx context.Context, f core.ReportFilter) (*ReportResult, error) {
	res, err := s.reporting.Report(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales report: %w", err)
	}
	return &ReportResult{Availability: availability(res), Report: res.Data}, nil
}

func (s *appService) InvoiceDetail(ctx context.Context, code string) (*InvoiceResult, error) {
	res, err := s.reporting.InvoiceDetail(ctx, code)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Availability: availability(res), Invoice: res.Data}, nil
}
