package web

import (
	"net/http"
	"strconv"

	"retail-pos/internal/app"
	"retail-pos/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ── Catalog API ──────────────────────────────────────────────────────────────

// apiListProducts handles GET /api/products?search=&minPrice=&maxPrice=&unit=.
// unit may repeat.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := app.ProductQuery{Search: q.Get("search"), Units: q["unit"]}

	var ok bool
	if query.MinPrice, ok = parsePriceParam(w, r, "minPrice"); !ok {
		return
	}
	if query.MaxPrice, ok = parsePriceParam(w, r, "maxPrice"); !ok {
		return
	}

	result := h.svc.ListProducts(r.Context(), query)
	writeJSON(w, struct {
		availability
		Products []core.Product `json:"products"`
		Units    []string       `json:"units"`
	}{fromAvailability(result.Availability), result.Products, result.Units})
}

type productBody struct {
	Name  string           `json:"name"`
	Unit  string           `json:"unit"`
	Price *decimal.Decimal `json:"price"`
}

func (b productBody) request() app.ProductRequest {
	return app.ProductRequest{Name: b.Name, Unit: b.Unit, Price: b.Price}
}

// apiAddProduct handles POST /api/products.
func (h *Handler) apiAddProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.AddProduct(r.Context(), body.request()); err != nil {
		h.writeServiceError(w, r, err, "Failed to add product")
		return
	}
	writeJSONStatus(w, http.StatusCreated, messageResponse{Message: "Product added successfully"})
}

// apiUpdateProduct handles PUT /api/products/{id}.
func (h *Handler) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), id, body.request())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update product")
		return
	}
	writeJSON(w, struct {
		Message string        `json:"message"`
		Product *core.Product `json:"product"`
	}{"Product updated successfully", product})
}

// apiDeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete product")
		return
	}
	writeJSON(w, messageResponse{Message: "Product deleted successfully"})
}

// apiListBranches handles GET /api/branches.
func (h *Handler) apiListBranches(w http.ResponseWriter, r *http.Request) {
	result := h.svc.ListBranches(r.Context())
	writeJSON(w, struct {
		availability
		Branches []core.Branch `json:"branches"`
	}{fromAvailability(result.Availability), result.Branches})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parsePriceParam reads an optional decimal query parameter. A malformed value
// writes a 400 and returns ok=false.
func parsePriceParam(w http.ResponseWriter, r *http.Request, name string) (*decimal.Decimal, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, r, "invalid "+name+": "+raw, "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	return &v, true
}
