package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"retail-pos/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins string
	StoreName      string
	Backend        string
	Log            zerolog.Logger
	// Now is the clock used for report timestamps. Nil means time.Now.
	Now func() time.Time
}

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	log    zerolog.Logger
	opts   Options
	now    func() time.Time
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	h := &Handler{
		svc:  svc,
		log:  opts.Log,
		opts: opts,
		now:  opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.log))
	r.Use(Recoverer(h.log))
	if c := CORS(opts.AllowedOrigins); c != nil {
		r.Use(c)
	}

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Printable report (fetched by the screenshot service) ─────────────────
	r.Get("/reports/print", h.printReport)
	r.Get("/api/screenshot-report", h.printReport)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// ── Catalog ──────────────────────────────────────────────────────────
		r.Get("/api/products", h.apiListProducts)
		r.Post("/api/products", h.apiAddProduct)
		r.Put("/api/products/{id}", h.apiUpdateProduct)
		r.Delete("/api/products/{id}", h.apiDeleteProduct)
		r.Get("/api/branches", h.apiListBranches)

		// ── Orders ───────────────────────────────────────────────────────────
		r.Get("/api/orders", h.apiListOrders)
		r.Post("/api/order-code", h.apiNextOrderCode)
		r.Get("/api/sales", h.apiListSales)
		r.Post("/api/sales", h.apiCreateOrder)
		r.Put("/api/sales", h.apiUpdateOrder)
		r.Delete("/api/sales/{code}", h.apiDeleteOrder)
		r.Get("/api/invoices/{code}", h.apiInvoiceDetail)

		// ── Reports ──────────────────────────────────────────────────────────
		r.Get("/api/reports", h.apiSalesReport)
		r.Get("/api/reports/export", h.apiExportReport)
	})

	h.router = r
	return r
}

// health returns service status and the active store backend.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}
	writeJSON(w, response{Status: "ok", Backend: h.opts.Backend})
}

// availability is embedded in list responses.
type availability struct {
	Degraded bool   `json:"degraded,omitempty"`
	Notice   string `json:"notice,omitempty"`
}

func fromAvailability(a app.Availability) availability {
	return availability{Degraded: a.Degraded, Notice: a.Notice}
}

type messageResponse struct {
	Message string `json:"message"`
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
