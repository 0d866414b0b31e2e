package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is a product picked for an order being composed.
type CartItem struct {
	Product  Product         `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note"`
}

// Cart is the working list of an order before submission. Adding the same
// product twice yields two items.
type Cart struct {
	Items []CartItem
}

// Add appends p with quantity 1.
func (c *Cart) Add(p Product, note string) {
	c.Items = append(c.Items, CartItem{Product: p, Quantity: decimal.NewFromInt(1), Note: strings.TrimSpace(note)})
}

// UpdateQuantity sets the quantity of item i, rounded to one decimal place.
// Negative values become 0; the item stays in the cart until removed.
func (c *Cart) UpdateQuantity(i int, q decimal.Decimal) bool {
	if i < 0 || i >= len(c.Items) {
		return false
	}
	q = q.Round(1)
	if q.IsNegative() {
		q = decimal.Zero
	}
	c.Items[i].Quantity = q
	return true
}

// UpdateNote replaces the note of item i.
func (c *Cart) UpdateNote(i int, note string) bool {
	if i < 0 || i >= len(c.Items) {
		return false
	}
	c.Items[i].Note = strings.TrimSpace(note)
	return true
}

// Remove deletes item i.
func (c *Cart) Remove(i int) bool {
	if i < 0 || i >= len(c.Items) {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Total is the sum of price × quantity over every item.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.Price.Mul(it.Quantity))
	}
	return total
}

// Lines returns the items with a positive quantity as order lines.
func (c *Cart) Lines() []LineInput {
	var lines []LineInput
	for _, it := range c.Items {
		if !it.Quantity.IsPositive() {
			continue
		}
		lines = append(lines, LineInput{
			Product:  it.Product.Name,
			Unit:     it.Product.Unit,
			Quantity: it.Quantity,
			Price:    it.Product.Price,
			Note:     it.Note,
		})
	}
	return lines
}
