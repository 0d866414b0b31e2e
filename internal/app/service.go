package app

import (
	"context"

	"retail-pos/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no display logic of any kind.
type ApplicationService interface {
	// ListProducts returns the catalog narrowed by q, plus the full unit list.
	ListProducts(ctx context.Context, q ProductQuery) *ProductListResult

	// AddProduct appends a product to the catalog.
	AddProduct(ctx context.Context, req ProductRequest) error

	// UpdateProduct overwrites the product at position id.
	UpdateProduct(ctx context.Context, id int, req ProductRequest) (*core.Product, error)

	// DeleteProduct removes the product at position id.
	DeleteProduct(ctx context.Context, id int) error

	// ListBranches returns every branch.
	ListBranches(ctx context.Context) *BranchListResult

	// ListOrders returns the recent orders narrowed by f.
	ListOrders(ctx context.Context, f core.OrderFilter) *OrderListResult

	// ListSaleLines returns every sale line, or only those of orderCode when set.
	ListSaleLines(ctx context.Context, orderCode string) *SaleLineListResult

	// NextOrderCode reserves the next order code for date (YYYY-MM-DD).
	NextOrderCode(ctx context.Context, date string) (*OrderCodeResult, error)

	// CreateOrder writes a new order from a cart. Items with zero quantity are dropped.
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderWriteResult, error)

	// UpdateOrder replaces a stored order (delete then re-insert).
	UpdateOrder(ctx context.Context, req OrderRequest) (*OrderWriteResult, error)

	// DeleteOrder removes an order from both tables.
	DeleteOrder(ctx context.Context, code string) (*OrderDeleteResult, error)

	// SalesReport returns the orders in a date range with totals.
	SalesReport(ctx context.Context, f core.ReportFilter) (*ReportResult, error)

	// InvoiceDetail returns the sale lines of one order.
	InvoiceDetail(ctx context.Context, code string) (*InvoiceResult, error)
}
