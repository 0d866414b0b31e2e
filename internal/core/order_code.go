package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"retail-pos/internal/sheets"

	"github.com/rs/zerolog"
)

// Sequencer reserves per-prefix order numbers. Next returns a number greater
// than both floor and every number it returned before for that prefix.
type Sequencer interface {
	Next(ctx context.Context, prefix string, floor int) (int, error)
}

type memorySequencer struct {
	mu   sync.Mutex
	last map[string]int
}

// NewMemorySequencer returns an in-process Sequencer. Reservations are lost on
// restart; the store scan passed in as floor keeps codes unique afterwards.
func NewMemorySequencer() Sequencer {
	return &memorySequencer{last: make(map[string]int)}
}

func (m *memorySequencer) Next(_ context.Context, prefix string, floor int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := max(m.last[prefix]+1, floor+1)
	m.last[prefix] = next
	return next, nil
}

// OrderCodeGenerator hands out order codes of the form YYYYMMDD-NNN.
type OrderCodeGenerator interface {
	// Generate reserves the next code for date (YYYY-MM-DD). If the store is
	// unreachable the code gets a random suffix and the result is degraded.
	Generate(ctx context.Context, date string) (Result[string], error)
}

type orderCodeGenerator struct {
	gw         sheets.Gateway
	layout     Layout
	seq        Sequencer
	log        zerolog.Logger
	randSuffix func() int
}

// NewOrderCodeGenerator constructs an OrderCodeGenerator. A nil seq uses an
// in-process sequencer.
func NewOrderCodeGenerator(gw sheets.Gateway, layout Layout, seq Sequencer, log zerolog.Logger) OrderCodeGenerator {
	if seq == nil {
		seq = NewMemorySequencer()
	}
	return &orderCodeGenerator{
		gw:         gw,
		layout:     layout,
		seq:        seq,
		log:        log,
		randSuffix: func() int { return rand.IntN(999) + 1 },
	}
}

func (g *orderCodeGenerator) Generate(ctx context.Context, date string) (Result[string], error) {
	d, err := parseDate(date)
	if err != nil {
		return Result[string]{}, invalid("Ngày lập không hợp lệ", map[string]any{"date": date})
	}
	prefix := d.Format("20060102")

	rows, err := g.gw.Read(ctx, g.layout.orderCodeRange())
	if err != nil {
		g.log.Warn().Err(err).Str("prefix", prefix).Msg("order code scan failed, using random suffix")
		return degraded(formatOrderCode(prefix, g.randSuffix()), FallbackNotice), nil
	}

	highest := 0
	for _, row := range rows {
		code := cell(row, 0)
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		if n := orderSuffix(code); n > highest {
			highest = n
		}
	}

	next, err := g.seq.Next(ctx, prefix, highest)
	if err != nil {
		g.log.Warn().Err(err).Str("prefix", prefix).Msg("order sequence unavailable, using store scan")
		return degraded(formatOrderCode(prefix, highest+1), "Order code was not reserved; it may collide with a concurrent order."), nil
	}
	return fresh(formatOrderCode(prefix, next)), nil
}

func formatOrderCode(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// orderSuffix parses the leading digits after the first "-"; anything
// unparsable counts as 0.
func orderSuffix(code string) int {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return 0
	}
	digits := parts[1]
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		return 0
	}
	return n
}
