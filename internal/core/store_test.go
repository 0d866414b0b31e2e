package core_test

import (
	"context"
	"errors"
	"testing"

	"retail-pos/internal/core"
	"retail-pos/internal/sheets"

	"github.com/rs/zerolog"
)

var errOffline = errors.New("spreadsheet offline")

// newStore returns an in-memory workbook with every table's header row.
func newStore(t *testing.T) *sheets.Workbook {
	t.Helper()
	wb, err := sheets.OpenWorkbook("")
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })
	for name, header := range core.DefaultLayout.Headers() {
		if err := wb.EnsureSheet(name, header); err != nil {
			t.Fatalf("EnsureSheet(%s): %v", name, err)
		}
	}
	return wb
}

func seed(t *testing.T, gw sheets.Gateway, rng string, rows ...[]any) {
	t.Helper()
	if err := gw.Append(context.Background(), rng, rows, sheets.Raw); err != nil {
		t.Fatalf("seed %s: %v", rng, err)
	}
}

func nopLog() zerolog.Logger {
	return zerolog.Nop()
}

// flakyGateway fails Append on one range a fixed number of times.
type flakyGateway struct {
	sheets.Gateway
	failRange string
	failures  int
	appends   int
}

func (f *flakyGateway) Append(ctx context.Context, rng string, rows [][]any, mode sheets.InputMode) error {
	if rng == f.failRange {
		f.appends++
		if f.failures != 0 {
			if f.failures > 0 {
				f.failures--
			}
			return errOffline
		}
	}
	return f.Gateway.Append(ctx, rng, rows, mode)
}

// lostReplyGateway stores an append on one range and then reports it as
// failed, the way a timed-out call that still reached the server does.
type lostReplyGateway struct {
	sheets.Gateway
	failRange string
	failures  int
	keep      int // rows stored by a failing call; -1 stores all of them
	appends   int
}

func (g *lostReplyGateway) Append(ctx context.Context, rng string, rows [][]any, mode sheets.InputMode) error {
	if rng != g.failRange {
		return g.Gateway.Append(ctx, rng, rows, mode)
	}
	g.appends++
	if g.failures == 0 {
		return g.Gateway.Append(ctx, rng, rows, mode)
	}
	g.failures--
	stored := rows
	if g.keep >= 0 && g.keep < len(rows) {
		stored = rows[:g.keep]
	}
	if len(stored) > 0 {
		if err := g.Gateway.Append(ctx, rng, stored, mode); err != nil {
			return err
		}
	}
	return context.DeadlineExceeded
}
