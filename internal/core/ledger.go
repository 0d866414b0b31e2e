package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"retail-pos/internal/sheets"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LedgerConfig tunes the SalesLedger.
type LedgerConfig struct {
	// RecentLimit caps ListOrders. Zero means 10.
	RecentLimit int
	// WriteRetries is how many times a failed append is retried once a
	// re-read shows none of its rows were stored.
	WriteRetries int
	// RetryDelay is the pause before the first retry; it grows linearly.
	RetryDelay time.Duration
}

// SalesLedger reads and writes orders. Each order is one summary row plus one
// detail row per line; both tables are keyed by order code. Writes are not
// atomic across the two tables.
type SalesLedger interface {
	// CreateOrder appends the detail rows, then the summary row.
	CreateOrder(ctx context.Context, in OrderInput) error

	// UpdateOrder deletes every row stored under previousCode (in.OrderCode
	// when empty) from both tables, then writes in as a new order.
	UpdateOrder(ctx context.Context, in OrderInput, previousCode string) error

	// DeleteOrder removes every row stored under code and returns how many
	// rows were removed.
	DeleteOrder(ctx context.Context, code string) (int, error)

	// ListOrders returns the most recent orders, newest code first.
	ListOrders(ctx context.Context) Result[[]Order]

	// ListAllOrders returns every order in sheet order.
	ListAllOrders(ctx context.Context) Result[[]Order]

	// ListSaleLines returns every detail row in sheet order.
	ListSaleLines(ctx context.Context) Result[[]SaleLine]
}

type salesLedger struct {
	gw     sheets.Gateway
	layout Layout
	cfg    LedgerConfig
	log    zerolog.Logger
}

// NewSalesLedger constructs a SalesLedger over gw.
func NewSalesLedger(gw sheets.Gateway, layout Layout, cfg LedgerConfig, log zerolog.Logger) SalesLedger {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 10
	}
	if cfg.WriteRetries < 0 {
		cfg.WriteRetries = 0
	}
	return &salesLedger{gw: gw, layout: layout, cfg: cfg, log: log}
}

// ── Writes ───────────────────────────────────────────────────────────────────

func (s *salesLedger) CreateOrder(ctx context.Context, in OrderInput) error {
	in, err := normalizeOrder(in)
	if err != nil {
		return err
	}
	return s.writeOrder(ctx, in, "create", 0)
}

func (s *salesLedger) UpdateOrder(ctx context.Context, in OrderInput, previousCode string) error {
	in, err := normalizeOrder(in)
	if err != nil {
		return err
	}
	previousCode = strings.TrimSpace(previousCode)
	if previousCode == "" {
		previousCode = in.OrderCode
	}

	deleted, err := s.removeOrder(ctx, previousCode, "update")
	if err != nil {
		return err
	}
	s.log.Info().Str("order", previousCode).Int("rows_deleted", deleted).Msg("old order rows removed")

	return s.writeOrder(ctx, in, "update", deleted)
}

func (s *salesLedger) DeleteOrder(ctx context.Context, code string) (int, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, invalid("Thiếu mã đơn hàng", map[string]any{"orderCode": code})
	}
	deleted, err := s.removeOrder(ctx, code, "delete")
	if err != nil {
		return deleted, err
	}
	if deleted == 0 {
		return 0, fmt.Errorf("order %s: %w", code, ErrNotFound)
	}
	return deleted, nil
}

// removeOrder deletes the detail and summary rows of code. Both tables are
// read in parallel; rows are deleted bottom-up so earlier positions hold.
func (s *salesLedger) removeOrder(ctx context.Context, code, op string) (int, error) {
	var summaryRows, detailRows [][]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.gw.Read(gctx, s.layout.summaryRange())
		summaryRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.gw.Read(gctx, s.layout.detailRange())
		detailRows = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to read order %s: %w", code, err)
	}

	deleted := 0
	for _, t := range []struct {
		sheet string
		rows  [][]string
	}{
		{s.layout.DetailSheet, detailRows},
		{s.layout.SummarySheet, summaryRows},
	} {
		positions := rowsWithCode(t.rows, code)
		for i := len(positions) - 1; i >= 0; i-- {
			p := positions[i]
			if err := s.gw.DeleteRows(ctx, t.sheet, p, p+1); err != nil {
				if deleted == 0 {
					return 0, fmt.Errorf("failed to delete order %s: %w", code, err)
				}
				return deleted, &PartialWriteError{Op: op, Code: code, RowsDeleted: deleted, Err: err}
			}
			deleted++
		}
	}
	return deleted, nil
}

// writeOrder appends the detail rows, then the summary row. deleted is the
// number of rows an update already removed, for error reporting.
func (s *salesLedger) writeOrder(ctx context.Context, in OrderInput, op string, deleted int) error {
	detail := make([][]any, 0, len(in.Lines))
	for _, l := range in.Lines {
		detail = append(detail, []any{
			in.OrderCode, in.OrderDate, in.Branch,
			l.Product, l.Unit,
			number(l.Quantity), number(l.Price), number(l.LineTotal()),
			l.Note,
		})
	}
	summary := [][]any{{in.OrderCode, in.OrderDate, in.Branch, number(in.Total)}}

	if err := s.appendReconciled(ctx, s.layout.detailRange(), in.OrderCode, detail); err != nil {
		var incomplete *incompleteAppendError
		if deleted == 0 && !errors.As(err, &incomplete) {
			return fmt.Errorf("failed to write order %s: %w", in.OrderCode, err)
		}
		return &PartialWriteError{Op: op, Code: in.OrderCode, RowsDeleted: deleted, Err: err}
	}
	if err := s.appendReconciled(ctx, s.layout.summaryRange(), in.OrderCode, summary); err != nil {
		s.log.Error().Err(err).Str("order", in.OrderCode).Msg("order summary missing after detail rows were written")
		return &PartialWriteError{Op: op, Code: in.OrderCode, RowsDeleted: deleted, DetailWritten: true, Err: err}
	}

	s.log.Info().Str("order", in.OrderCode).Str("op", op).Int("lines", len(in.Lines)).Msg("order written")
	return nil
}

// incompleteAppendError reports an append that stored only part of its rows.
type incompleteAppendError struct {
	stored, want int
	err          error
}

func (e *incompleteAppendError) Error() string {
	return fmt.Sprintf("%d of %d rows stored: %v", e.stored, e.want, e.err)
}

func (e *incompleteAppendError) Unwrap() error {
	return e.err
}

// appendReconciled appends rows, all keyed by code, to rng. After a failed
// append the range is read again: rows that arrived despite the error are not
// sent twice, and the append is only retried when none of them arrived.
func (s *salesLedger) appendReconciled(ctx context.Context, rng, code string, rows [][]any) error {
	before, err := s.countCode(ctx, rng, code)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err = s.gw.Append(ctx, rng, rows, sheets.UserEntered)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.cfg.RetryDelay):
		}

		now, rerr := s.countCode(ctx, rng, code)
		if rerr != nil {
			s.log.Warn().Err(rerr).Str("range", rng).Msg("could not check append after failure")
			return err
		}
		switch stored := now - before; {
		case stored == len(rows):
			s.log.Warn().Err(err).Str("range", rng).Str("order", code).Msg("append reported an error but rows were stored")
			return nil
		case stored != 0:
			return &incompleteAppendError{stored: stored, want: len(rows), err: err}
		}

		if attempt > s.cfg.WriteRetries {
			return err
		}
		s.log.Warn().Err(err).Str("range", rng).Int("attempt", attempt).Msg("retrying append")
	}
}

// countCode returns how many data rows of rng are keyed by code.
func (s *salesLedger) countCode(ctx context.Context, rng, code string) (int, error) {
	rows, err := s.gw.Read(ctx, rng)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return len(rowsWithCode(rows, code)), nil
}

// normalizeOrder trims and validates in, and fills the total from the lines
// when the caller left it at zero.
func normalizeOrder(in OrderInput) (OrderInput, error) {
	in.OrderCode = strings.TrimSpace(in.OrderCode)
	in.OrderDate = strings.TrimSpace(in.OrderDate)
	in.Branch = strings.TrimSpace(in.Branch)

	received := map[string]any{"orderCode": in.OrderCode, "orderDate": in.OrderDate, "branch": in.Branch}
	if in.OrderCode == "" || in.OrderDate == "" || in.Branch == "" {
		return in, invalid("Vui lòng nhập đầy đủ mã đơn hàng, ngày lập và chi nhánh", received)
	}
	if _, err := parseDate(in.OrderDate); err != nil {
		return in, invalid("Ngày lập không hợp lệ", received)
	}
	if len(in.Lines) == 0 {
		return in, invalid("Đơn hàng phải có ít nhất một sản phẩm", received)
	}

	lines := make([]LineInput, len(in.Lines))
	sum := decimal.Zero
	for i, l := range in.Lines {
		l.Product = strings.TrimSpace(l.Product)
		l.Unit = strings.TrimSpace(l.Unit)
		l.Note = strings.TrimSpace(l.Note)
		if l.Product == "" || !l.Quantity.IsPositive() || l.Price.IsNegative() {
			return in, invalid(fmt.Sprintf("Dòng %d không hợp lệ", i+1), map[string]any{
				"product": l.Product, "quantity": l.Quantity, "price": l.Price,
			})
		}
		lines[i] = l
		sum = sum.Add(l.LineTotal())
	}
	in.Lines = lines
	if in.Total.IsZero() {
		in.Total = sum
	}
	return in, nil
}

// rowsWithCode returns the 0-based positions of the data rows whose first
// cell equals code, ascending. Position 0 is the header.
func rowsWithCode(rows [][]string, code string) []int {
	var out []int
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cell(row, 0) == code {
			out = append(out, i)
		}
	}
	return out
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *salesLedger) ListOrders(ctx context.Context) Result[[]Order] {
	res := s.ListAllOrders(ctx)
	if res.Degraded {
		return res
	}
	orders := res.Data
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderCode > orders[j].OrderCode })
	if len(orders) > s.cfg.RecentLimit {
		orders = orders[:s.cfg.RecentLimit]
	}
	return fresh(orders)
}

func (s *salesLedger) ListAllOrders(ctx context.Context) Result[[]Order] {
	rows, err := s.gw.Read(ctx, s.layout.summaryRange())
	if err != nil {
		s.log.Warn().Err(err).Msg("order read failed, serving fallback orders")
		return degraded(fallbackOrders(), FallbackNotice)
	}

	orders := make([]Order, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		orders = append(orders, Order{
			ID:        i,
			OrderCode: cell(row, 0),
			Date:      normalizeDate(cell(row, 1)),
			Branch:    cell(row, 2),
			Total:     cellDecimal(row, 3),
			Status:    StatusCompleted,
		})
	}
	return fresh(orders)
}

func (s *salesLedger) ListSaleLines(ctx context.Context) Result[[]SaleLine] {
	rows, err := s.gw.Read(ctx, s.layout.detailRange())
	if err != nil {
		s.log.Warn().Err(err).Msg("sale line read failed, serving empty list")
		return degraded([]SaleLine{}, FallbackNotice)
	}

	lines := make([]SaleLine, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		lines = append(lines, SaleLine{
			ID:        i,
			OrderCode: cell(row, 0),
			OrderDate: normalizeDate(cell(row, 1)),
			Branch:    cell(row, 2),
			Product:   cell(row, 3),
			Unit:      cell(row, 4),
			Quantity:  cellDecimal(row, 5),
			Price:     cellDecimal(row, 6),
			Total:     cellDecimal(row, 7),
			Note:      cell(row, 8),
		})
	}
	return fresh(lines)
}
