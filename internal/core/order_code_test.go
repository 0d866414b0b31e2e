package core_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"retail-pos/internal/core"
	"retail-pos/internal/sheets"
)

func TestOrderCode_NextAfterExisting(t *testing.T) {
	wb := newStore(t)
	seed(t, wb, "Sales!A:I",
		[]any{"20250115-001", "2025-01-15", "Quận 1", "Áo", "Cái", 1.0, 100.0, 100.0, ""},
		[]any{"20250114-007", "2025-01-14", "Quận 1", "Áo", "Cái", 1.0, 100.0, 100.0, ""},
	)
	gen := core.NewOrderCodeGenerator(wb, core.DefaultLayout, nil, nopLog())
	ctx := context.Background()

	res, err := gen.Generate(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Degraded || res.Data != "20250115-002" {
		t.Errorf("Generate = %+v, want 20250115-002", res)
	}
}

func TestOrderCode_ConsecutiveCallsDifferByOne(t *testing.T) {
	gen := core.NewOrderCodeGenerator(newStore(t), core.DefaultLayout, nil, nopLog())
	ctx := context.Background()

	first, err := gen.Generate(ctx, "2025-03-01")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := gen.Generate(ctx, "2025-03-01")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Data != "20250301-001" || second.Data != "20250301-002" {
		t.Errorf("codes = %s, %s; want 20250301-001, 20250301-002", first.Data, second.Data)
	}

	// Another date has its own sequence.
	other, _ := gen.Generate(ctx, "2025-03-02")
	if other.Data != "20250302-001" {
		t.Errorf("other date code = %s, want 20250302-001", other.Data)
	}
}

func TestOrderCode_IgnoresUnparsableSuffix(t *testing.T) {
	wb := newStore(t)
	seed(t, wb, "Sales!A:I", []any{"20250115-abc"}, []any{"20250115"}, []any{"20250115-012x"})
	gen := core.NewOrderCodeGenerator(wb, core.DefaultLayout, nil, nopLog())

	res, err := gen.Generate(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Data != "20250115-013" {
		t.Errorf("Generate = %s, want 20250115-013", res.Data)
	}
}

func TestOrderCode_InvalidDate(t *testing.T) {
	gen := core.NewOrderCodeGenerator(newStore(t), core.DefaultLayout, nil, nopLog())
	var verr *core.ValidationError
	for _, d := range []string{"", "15/01/2025", "2025-13-01"} {
		if _, err := gen.Generate(context.Background(), d); !errors.As(err, &verr) {
			t.Errorf("Generate(%q): expected ValidationError, got %v", d, err)
		}
	}
}

var fallbackCode = regexp.MustCompile(`^20250115-(\d{3})$`)

func TestOrderCode_RandomSuffixWhenUnreachable(t *testing.T) {
	gen := core.NewOrderCodeGenerator(sheets.Unavailable(errOffline), core.DefaultLayout, nil, nopLog())

	res, err := gen.Generate(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Degraded {
		t.Error("expected a degraded result")
	}
	m := fallbackCode.FindStringSubmatch(res.Data)
	if m == nil {
		t.Fatalf("fallback code %q does not use the requested date", res.Data)
	}
	if n, _ := strconv.Atoi(m[1]); n < 1 || n > 999 {
		t.Errorf("fallback suffix %d out of range", n)
	}
}

type brokenSequencer struct{}

func (brokenSequencer) Next(context.Context, string, int) (int, error) {
	return 0, errOffline
}

func TestOrderCode_SequencerFailureFallsBackToScan(t *testing.T) {
	wb := newStore(t)
	seed(t, wb, "Sales!A:I", []any{"20250115-004"})
	gen := core.NewOrderCodeGenerator(wb, core.DefaultLayout, brokenSequencer{}, nopLog())

	res, err := gen.Generate(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Degraded || res.Data != "20250115-005" {
		t.Errorf("Generate = %+v, want degraded 20250115-005", res)
	}
}

func TestMemorySequencer(t *testing.T) {
	seq := core.NewMemorySequencer()
	ctx := context.Background()

	steps := []struct {
		prefix string
		floor  int
		want   int
	}{
		{"20250101", 5, 6},
		{"20250101", 0, 7},
		{"20250101", 20, 21},
		{"20250102", 0, 1},
	}
	for _, s := range steps {
		got, err := seq.Next(ctx, s.prefix, s.floor)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != s.want {
			t.Errorf("Next(%s, %d) = %d, want %d", s.prefix, s.floor, got, s.want)
		}
	}
}
