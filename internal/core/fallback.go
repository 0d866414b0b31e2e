package core

import "github.com/shopspring/decimal"

// FallbackNotice is shown whenever a read falls back to built-in data.
const FallbackNotice = "Using fallback data. Please check Google Sheets configuration."

// Fallback data sets are returned when the store is unreachable. They are
// rebuilt on every call so callers may modify them freely.

func fallbackProducts() []Product {
	return []Product{
		{ID: 1, Name: "Áo thun trắng cổ tròn", Unit: "Cái", Price: decimal.NewFromInt(250000)},
		{ID: 2, Name: "Quần jean xanh skinny", Unit: "Cái", Price: decimal.NewFromInt(450000)},
		{ID: 3, Name: "Giày sneaker trắng", Unit: "Đôi", Price: decimal.NewFromInt(890000)},
		{ID: 4, Name: "Áo hoodie xám", Unit: "Cái", Price: decimal.NewFromInt(650000)},
		{ID: 5, Name: "Túi xách da nâu", Unit: "Cái", Price: decimal.NewFromInt(1200000)},
	}
}

func fallbackBranches() []Branch {
	return []Branch{
		{ID: 1, Name: "Chi nhánh Quận 1"},
		{ID: 2, Name: "Chi nhánh Quận 3"},
		{ID: 3, Name: "Chi nhánh Quận 7"},
		{ID: 4, Name: "Chi nhánh Thủ Đức"},
	}
}

func fallbackOrders() []Order {
	return []Order{
		{ID: 1, OrderCode: "#DH001", Date: "2025-10-28", Branch: "Tân Hóa", Total: decimal.NewFromInt(250000), Status: StatusCompleted},
		{ID: 2, OrderCode: "#DH002", Date: "2025-10-28", Branch: "Tân Kỳ", Total: decimal.NewFromInt(180000), Status: StatusProcessing},
		{ID: 3, OrderCode: "#DH003", Date: "2025-10-28", Branch: "Hoàng Long", Total: decimal.NewFromInt(320000), Status: StatusCompleted},
	}
}
