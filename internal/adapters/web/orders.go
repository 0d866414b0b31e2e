package web

import (
	"net/http"

	"retail-pos/internal/app"
	"retail-pos/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ── Orders API ───────────────────────────────────────────────────────────────

// apiListOrders handles GET /api/orders?search=&date=&branch=.
func (h *Handler) apiListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := h.svc.ListOrders(r.Context(), core.OrderFilter{
		Search: q.Get("search"),
		Date:   q.Get("date"),
		Branch: q.Get("branch"),
	})
	writeJSON(w, struct {
		availability
		Orders []core.Order `json:"orders"`
	}{fromAvailability(result.Availability), result.Orders})
}

// apiNextOrderCode handles POST /api/order-code.
func (h *Handler) apiNextOrderCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.NextOrderCode(r.Context(), body.Date)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to generate order code")
		return
	}
	writeJSON(w, struct {
		availability
		OrderCode string `json:"orderCode"`
	}{fromAvailability(result.Availability), result.OrderCode})
}

// apiListSales handles GET /api/sales?orderCode=.
func (h *Handler) apiListSales(w http.ResponseWriter, r *http.Request) {
	result := h.svc.ListSaleLines(r.Context(), r.URL.Query().Get("orderCode"))
	writeJSON(w, struct {
		availability
		Sales []core.SaleLine `json:"sales"`
	}{fromAvailability(result.Availability), result.Lines})
}

type cartItemBody struct {
	Product struct {
		Name  string          `json:"name"`
		Unit  string          `json:"unit"`
		Price decimal.Decimal `json:"price"`
	} `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note"`
}

type orderBody struct {
	OrderCode    string           `json:"orderCode"`
	OrderDate    string           `json:"orderDate"`
	Branch       string           `json:"branch"`
	CartItems    []cartItemBody   `json:"cartItems"`
	Total        *decimal.Decimal `json:"total"`
	OldOrderCode string           `json:"oldOrderCode"`
}

func (b orderBody) request() app.OrderRequest {
	items := make([]app.CartItemRequest, 0, len(b.CartItems))
	for _, it := range b.CartItems {
		items = append(items, app.CartItemRequest{
			ProductName:  it.Product.Name,
			ProductUnit:  it.Product.Unit,
			ProductPrice: it.Product.Price,
			Quantity:     it.Quantity,
			Note:         it.Note,
		})
	}
	return app.OrderRequest{
		OrderCode:    b.OrderCode,
		OrderDate:    b.OrderDate,
		Branch:       b.Branch,
		Items:        items,
		Total:        b.Total,
		PreviousCode: b.OldOrderCode,
	}
}

type orderWriteResponse struct {
	Message   string          `json:"message"`
	OrderCode string          `json:"orderCode"`
	Lines     int             `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// apiCreateOrder handles POST /api/sales.
func (h *Handler) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateOrder(r.Context(), body.request())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to save order")
		return
	}
	writeJSONStatus(w, http.StatusCreated, orderWriteResponse{
		Message:   "Đơn hàng đã được lưu thành công",
		OrderCode: result.OrderCode,
		Lines:     result.Lines,
		Total:     result.Total,
	})
}

// apiUpdateOrder handles PUT /api/sales. oldOrderCode names the stored order
// when the code itself changes.
func (h *Handler) apiUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateOrder(r.Context(), body.request())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update order")
		return
	}
	writeJSON(w, orderWriteResponse{
		Message:   "Đơn hàng đã được cập nhật thành công",
		OrderCode: result.OrderCode,
		Lines:     result.Lines,
		Total:     result.Total,
	})
}

// apiDeleteOrder handles DELETE /api/sales/{code}.
func (h *Handler) apiDeleteOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.DeleteOrder(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to delete order")
		return
	}
	writeJSON(w, struct {
		Message     string `json:"message"`
		OrderCode   string `json:"orderCode"`
		RowsDeleted int    `json:"rowsDeleted"`
	}{"Đơn hàng đã được xóa", result.OrderCode, result.RowsDeleted})
}

// apiInvoiceDetail handles GET /api/invoices/{code}.
func (h *Handler) apiInvoiceDetail(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.InvoiceDetail(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to load invoice")
		return
	}
	writeJSON(w, struct {
		availability
		Invoice *core.InvoiceDetail `json:"invoice"`
	}{fromAvailability(result.Availability), result.Invoice})
}
