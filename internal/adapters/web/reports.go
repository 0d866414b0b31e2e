package web

import (
	"bytes"
	"errors"
	"html"
	"net/http"
	"strconv"

	"retail-pos/internal/core"
	"retail-pos/internal/export"
	"retail-pos/web/templates/layouts"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ── Reports ──────────────────────────────────────────────────────────────────

func reportFilter(r *http.Request) core.ReportFilter {
	q := r.URL.Query()
	return core.ReportFilter{
		From:   q.Get("fromDate"),
		To:     q.Get("toDate"),
		Branch: q.Get("branch"),
	}
}

func (h *Handler) printMeta(notice string) layouts.PrintLayoutData {
	now := h.now()
	return layouts.PrintLayoutData{
		Title:         "Báo cáo bán hàng",
		StoreName:     h.opts.StoreName,
		GeneratedDate: now.Format("02-01-2006"),
		GeneratedTime: now.Format("15:04"),
		Notice:        notice,
	}
}

// apiSalesReport handles GET /api/reports?fromDate=&toDate=&branch=.
func (h *Handler) apiSalesReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SalesReport(r.Context(), reportFilter(r))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to build report")
		return
	}
	writeJSON(w, struct {
		availability
		Report *core.SalesReport `json:"report"`
	}{fromAvailability(result.Availability), result.Report})
}

// apiExportReport handles GET /api/reports/export and streams an .xlsx file.
func (h *Handler) apiExportReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SalesReport(r.Context(), reportFilter(r))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to build report")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReportXLSX(&buf, result.Report, h.printMeta(result.Notice)); err != nil {
		h.log.Error().Err(err).Msg("xlsx export failed")
		writeError(w, r, "Failed to export report", "EXPORT_ERROR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ReportFileName(h.now(), "xlsx")+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// printReport handles GET /reports/print and GET /api/screenshot-report: a
// standalone HTML page sized for capture as an image.
func (h *Handler) printReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")

	result, err := h.svc.SalesReport(r.Context(), reportFilter(r))
	if err != nil {
		status := http.StatusInternalServerError
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		} else {
			h.log.Error().Err(err).Msg("print report failed")
		}
		writeHTMLError(w, status, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.RenderReportHTML(&buf, result.Report, h.printMeta(result.Notice)); err != nil {
		h.log.Error().Err(err).Msg("render report failed")
		writeHTMLError(w, http.StatusInternalServerError, "Không thể tạo báo cáo")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeHTMLError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("<!DOCTYPE html><html><body><p>" + html.EscapeString(msg) + "</p></body></html>"))
}
