package sheets

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Gateway
	limiter *rate.Limiter
}

// WithRateLimit wraps g so that every call first waits for a token from a
// limiter of perSecond calls with the given burst. The Sheets API enforces a
// per-minute quota per service account. perSecond <= 0 disables limiting.
func WithRateLimit(g Gateway, perSecond float64, burst int) Gateway {
	if perSecond <= 0 {
		return g
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{next: g, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *rateLimited) wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("spreadsheet rate limit: %w", err)
	}
	return nil
}

func (l *rateLimited) Read(ctx context.Context, rng string) ([][]string, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Read(ctx, rng)
}

func (l *rateLimited) Append(ctx context.Context, rng string, rows [][]any, mode InputMode) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Append(ctx, rng, rows, mode)
}

func (l *rateLimited) Update(ctx context.Context, rng string, rows [][]any, mode InputMode) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Update(ctx, rng, rows, mode)
}

func (l *rateLimited) DeleteRows(ctx context.Context, sheet string, start, end int) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.DeleteRows(ctx, sheet, start, end)
}
