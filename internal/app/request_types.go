package app

import (
	"github.com/shopspring/decimal"
)

// ProductRequest is the input for adding or updating a product.
// A nil Price means the field was not supplied.
type ProductRequest struct {
	Name  string
	Unit  string
	Price *decimal.Decimal
}

// ProductQuery filters ListProducts. The zero value returns everything.
type ProductQuery struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Units    []string
}

// CartItemRequest is one cart item of an order submission. The product is
// carried by value: name, unit and price are copied into the sale line.
type CartItemRequest struct {
	ProductName  string
	ProductUnit  string
	ProductPrice decimal.Decimal
	Quantity     decimal.Decimal
	Note         string
}

// OrderRequest is the input for creating or updating an order.
type OrderRequest struct {
	OrderCode string
	OrderDate string
	Branch    string
	Items     []CartItemRequest
	// Total overrides the cart total when set.
	Total *decimal.Decimal
	// PreviousCode is the code the order was stored under, for updates that
	// change the code. Empty means unchanged.
	PreviousCode string
}
