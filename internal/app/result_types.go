package app

import (
	"retail-pos/internal/core"

	"github.com/shopspring/decimal"
)

// Availability is embedded in read results. Degraded means the store could
// not be read and the data is the built-in fallback.
type Availability struct {
	Degraded bool
	Notice   string
}

func availability[T any](r core.Result[T]) Availability {
	return Availability{Degraded: r.Degraded, Notice: r.Notice}
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Availability
	Products []core.Product
	// Units lists every unit of the unfiltered catalog, for filter pickers.
	Units []string
}

// BranchListResult is returned by ListBranches.
type BranchListResult struct {
	Availability
	Branches []core.Branch
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Availability
	Orders []core.Order
}

// SaleLineListResult is returned by ListSaleLines.
type SaleLineListResult struct {
	Availability
	Lines []core.SaleLine
}

// OrderCodeResult is returned by NextOrderCode.
type OrderCodeResult struct {
	Availability
	OrderCode string
}

// OrderWriteResult is returned by CreateOrder and UpdateOrder.
type OrderWriteResult struct {
	OrderCode string
	Lines     int
	Total     decimal.Decimal
}

// OrderDeleteResult is returned by DeleteOrder.
type OrderDeleteResult struct {
	OrderCode   string
	RowsDeleted int
}

// ReportResult is returned by SalesReport.
type ReportResult struct {
	Availability
	Report *core.SalesReport
}

// InvoiceResult is returned by InvoiceDetail.
type InvoiceResult struct {
	Availability
	Invoice *core.InvoiceDetail
}
