package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderFilter narrows an order list. Empty fields match everything.
type OrderFilter struct {
	Search string // substring of code or branch, case-insensitive
	Date   string // exact YYYY-MM-DD
	Branch string // exact branch name
}

// FilterOrders returns the orders matching f, keeping their order.
func FilterOrders(orders []Order, f OrderFilter) []Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.OrderCode), search) &&
			!strings.Contains(strings.ToLower(o.Branch), search) {
			continue
		}
		if f.Date != "" && o.Date != f.Date {
			continue
		}
		if f.Branch != "" && o.Branch != f.Branch {
			continue
		}
		out = append(out, o)
	}
	return out
}

// ProductFilter narrows a product list. Nil bounds and an empty unit set
// match everything.
type ProductFilter struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Units    []string
}

// FilterProducts returns the products matching f. Search matches the name or
// the unit, case-insensitive.
func FilterProducts(products []Product, f ProductFilter) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	units := make(map[string]bool, len(f.Units))
	for _, u := range f.Units {
		units[u] = true
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Unit), search) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if len(units) > 0 && !units[p.Unit] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProductUnits lists the distinct non-empty units in first-seen order.
func ProductUnits(products []Product) []string {
	seen := make(map[string]bool)
	var units []string
	for _, p := range products {
		if p.Unit == "" || seen[p.Unit] {
			continue
		}
		seen[p.Unit] = true
		units = append(units, p.Unit)
	}
	return units
}

// SaleLinesByCode returns the lines of one order.
func SaleLinesByCode(lines []SaleLine, code string) []SaleLine {
	out := []SaleLine{}
	for _, l := range lines {
		if l.OrderCode == code {
			out = append(out, l)
		}
	}
	return out
}
