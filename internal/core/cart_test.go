package core_test

import (
	"testing"

	"retail-pos/internal/core"

	"github.com/shopspring/decimal"
)

func TestCart_AddNeverMerges(t *testing.T) {
	var c core.Cart
	p := core.Product{ID: 1, Name: "Áo", Unit: "Cái", Price: dec("100")}
	c.Add(p, "")
	c.Add(p, "  size L ")

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
	if !c.Items[1].Quantity.Equal(decimal.NewFromInt(1)) || c.Items[1].Note != "size L" {
		t.Errorf("second item = %+v", c.Items[1])
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	var c core.Cart
	c.Add(core.Product{Name: "Áo", Unit: "Cái", Price: dec("100")}, "")

	tests := []struct {
		in, want string
	}{
		{"2.26", "2.3"},
		{"0.04", "0"},
		{"-1", "0"},
		{"3", "3"},
	}
	for _, tt := range tests {
		if !c.UpdateQuantity(0, dec(tt.in)) {
			t.Fatalf("UpdateQuantity(%s) reported a missing item", tt.in)
		}
		if !c.Items[0].Quantity.Equal(dec(tt.want)) {
			t.Errorf("UpdateQuantity(%s) = %s, want %s", tt.in, c.Items[0].Quantity, tt.want)
		}
	}

	// Clamping to zero keeps the item.
	c.UpdateQuantity(0, dec("-5"))
	if len(c.Items) != 1 {
		t.Error("zero quantity must not remove the item")
	}
	if c.UpdateQuantity(3, dec("1")) {
		t.Error("UpdateQuantity out of range should report false")
	}
}

func TestCart_TotalAndLines(t *testing.T) {
	var c core.Cart
	c.Add(core.Product{Name: "A", Unit: "Cái", Price: dec("100")}, "")
	c.Add(core.Product{Name: "B", Unit: "Kg", Price: dec("40")}, "tươi")
	c.Add(core.Product{Name: "C", Unit: "Cái", Price: dec("999")}, "")
	c.UpdateQuantity(1, dec("2.5"))
	c.UpdateQuantity(2, dec("0"))

	if !c.Total().Equal(dec("200")) {
		t.Errorf("Total = %s, want 200", c.Total())
	}

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("zero-quantity items must be dropped, got %d lines", len(lines))
	}
	if lines[1].Product != "B" || lines[1].Note != "tươi" || !lines[1].LineTotal().Equal(dec("100")) {
		t.Errorf("line = %+v", lines[1])
	}

	if !c.Remove(2) || len(c.Items) != 2 {
		t.Error("Remove should delete the item")
	}
	if c.Remove(5) {
		t.Error("Remove out of range should report false")
	}
}
