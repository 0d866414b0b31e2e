package core

import "github.com/shopspring/decimal"

// StatusCompleted is reported for every stored order; the summary table has no status column.
const StatusCompleted = "Hoàn thành"

// StatusProcessing only appears in the fallback order list.
const StatusProcessing = "Đang xử lý"

// Product is a catalog row. ID is the 1-based position among data rows and
// changes when an earlier row is deleted.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// Branch is a store location. ID is positional and read-only.
type Branch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Order is one row of the order summary table.
type Order struct {
	ID        int             `json:"id"`
	OrderCode string          `json:"orderCode"`
	Date      string          `json:"date"`
	Branch    string          `json:"branch"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
}

// SaleLine is one row of the order detail table.
type SaleLine struct {
	ID        int             `json:"id"`
	OrderCode string          `json:"orderCode"`
	OrderDate string          `json:"orderDate"`
	Branch    string          `json:"branch"`
	Product   string          `json:"product"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note"`
}

// LineInput is one line of an order being written.
type LineInput struct {
	Product  string
	Unit     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Note     string
}

// LineTotal returns Quantity × Price.
func (l LineInput) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// OrderInput is an order to create or to rewrite.
type OrderInput struct {
	OrderCode string
	OrderDate string
	Branch    string
	Lines     []LineInput
	Total     decimal.Decimal
}

// Result carries data read from the store. Degraded is set when the store was
// unreachable and Data holds the built-in fallback; Notice is the advisory
// shown to the user in that case.
type Result[T any] struct {
	Data     T
	Degraded bool
	Notice   string
}

func fresh[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

func degraded[T any](v T, notice string) Result[T] {
	return Result[T]{Data: v, Degraded: true, Notice: notice}
}
