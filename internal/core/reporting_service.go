package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportFilter selects the orders of a sales report. Dates are inclusive
// calendar dates (YYYY-MM-DD); empty fields are unbounded.
type ReportFilter struct {
	From   string `json:"fromDate,omitempty"`
	To     string `json:"toDate,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// BranchTotal is one per-branch subtotal of a report.
type BranchTotal struct {
	Branch string          `json:"branch"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// SalesReport is the filtered order list with its totals.
type SalesReport struct {
	Filter   ReportFilter    `json:"filter"`
	Orders   []Order         `json:"orders"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	ByBranch []BranchTotal   `json:"byBranch"`
}

// InvoiceDetail is the line breakdown of one order.
type InvoiceDetail struct {
	OrderCode string          `json:"orderCode"`
	Lines     []SaleLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// BuildSalesReport filters orders by f and sums them. Rows keep their input
// order; per-branch subtotals are sorted by branch name.
func BuildSalesReport(orders []Order, f ReportFilter) (*SalesReport, error) {
	f.From = strings.TrimSpace(f.From)
	f.To = strings.TrimSpace(f.To)
	f.Branch = strings.TrimSpace(f.Branch)

	received := map[string]any{"fromDate": f.From, "toDate": f.To, "branch": f.Branch}
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := parseDate(d); err != nil {
			return nil, invalid("Ngày không hợp lệ", received)
		}
	}
	// YYYY-MM-DD compares correctly as a string.
	if f.From != "" && f.To != "" && f.From > f.To {
		return nil, invalid("Từ ngày phải trước hoặc bằng đến ngày", received)
	}

	report := &SalesReport{Filter: f, Orders: []Order{}, Total: decimal.Zero}
	byBranch := make(map[string]*BranchTotal)
	for _, o := range orders {
		if f.From != "" || f.To != "" {
			if _, err := parseDate(o.Date); err != nil {
				continue
			}
			if f.From != "" && o.Date < f.From || f.To != "" && o.Date > f.To {
				continue
			}
		}
		if f.Branch != "" && o.Branch != f.Branch {
			continue
		}

		report.Orders = append(report.Orders, o)
		report.Total = report.Total.Add(o.Total)

		bt, ok := byBranch[o.Branch]
		if !ok {
			bt = &BranchTotal{Branch: o.Branch, Total: decimal.Zero}
			byBranch[o.Branch] = bt
		}
		bt.Count++
		bt.Total = bt.Total.Add(o.Total)
	}
	report.Count = len(report.Orders)

	report.ByBranch = make([]BranchTotal, 0, len(byBranch))
	for _, bt := range byBranch {
		report.ByBranch = append(report.ByBranch, *bt)
	}
	sort.Slice(report.ByBranch, func(i, j int) bool { return report.ByBranch[i].Branch < report.ByBranch[j].Branch })

	return report, nil
}

// ReportingService builds read-only sales views.
type ReportingService interface {
	// Report returns every stored order matching f with its totals.
	Report(ctx context.Context, f ReportFilter) (Result[*SalesReport], error)

	// InvoiceDetail returns the lines of one order.
	InvoiceDetail(ctx context.Context, code string) (Result[*InvoiceDetail], error)
}

type reportingService struct {
	ledger SalesLedger
}

// NewReportingService constructs a ReportingService over the ledger.
func NewReportingService(ledger SalesLedger) ReportingService {
	return &reportingService{ledger: ledger}
}

func (s *reportingService) Report(ctx context.Context, f ReportFilter) (Result[*SalesReport], error) {
	orders := s.ledger.ListAllOrders(ctx)
	report, err := BuildSalesReport(orders.Data, f)
	if err != nil {
		return Result[*SalesReport]{}, err
	}
	return Result[*SalesReport]{Data: report, Degraded: orders.Degraded, Notice: orders.Notice}, nil
}

func (s *reportingService) InvoiceDetail(ctx context.Context, code string) (Result[*InvoiceDetail], error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Result[*InvoiceDetail]{}, invalid("Thiếu mã đơn hàng", map[string]any{"orderCode": code})
	}

	all := s.ledger.ListSaleLines(ctx)
	lines := SaleLinesByCode(all.Data, code)
	if len(lines) == 0 && !all.Degraded {
		return Result[*InvoiceDetail]{}, fmt.Errorf("order %s: %w", code, ErrNotFound)
	}

	detail := &InvoiceDetail{OrderCode: code, Lines: lines, Total: decimal.Zero}
	for _, l := range lines {
		detail.Total = detail.Total.Add(l.Total)
	}
	return Result[*InvoiceDetail]{Data: detail, Degraded: all.Degraded, Notice: all.Notice}, nil
}
