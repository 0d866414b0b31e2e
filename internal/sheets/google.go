package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleConfig holds the service-account credentials for the Sheets API.
type GoogleConfig struct {
	SpreadsheetID string
	ClientEmail   string
	// PrivateKey is the PEM key; literal "\n" sequences (as stored in env files) are unescaped.
	PrivateKey string
	// Timeout bounds each API call. Zero means no per-call timeout.
	Timeout time.Duration
}

// Google is a Gateway backed by a Google Sheets spreadsheet.
type Google struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	timeout       time.Duration

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewGoogle authenticates with a service-account JWT and returns a Gateway.
// It returns ErrNoCredentials when any credential is missing.
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	if cfg.SpreadsheetID == "" || cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, ErrNoCredentials
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Google{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       cfg.Timeout,
		sheetIDs:      make(map[string]int64),
	}, nil
}

// Read implements Gateway. Values come back unformatted: dates are serial
// numbers, independent of the spreadsheet locale.
func (g *Google) Read(ctx context.Context, rng string) ([][]string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return cellStrings(resp.Values), nil
}

// Append implements Gateway.
func (g *Google) Append(ctx context.Context, rng string, rows [][]any, mode InputMode) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(mode.String()).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return nil
}

// Update implements Gateway.
func (g *Google) Update(ctx context.Context, rng string, rows [][]any, mode InputMode) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(mode.String()).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return nil
}

// DeleteRows implements Gateway. The numeric sheet id is resolved from the
// sheet title on first use.
func (g *Google) DeleteRows(ctx context.Context, sheet string, start, end int) error {
	if start < 0 || end <= start {
		return fmt.Errorf("invalid row range [%d, %d)", start, end)
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	sheetID, err := g.sheetID(ctx, sheet)
	if err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(start),
					EndIndex:   int64(end),
					// Zero is a valid sheet id and start index.
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete rows %d-%d of %s: %w", start, end, sheet, err)
	}
	return nil
}

func (g *Google) sheetID(ctx context.Context, title string) (int64, error) {
	g.mu.Lock()
	id, ok := g.sheetIDs[title]
	g.mu.Unlock()
	if ok {
		return id, nil
	}

	resp, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to load sheet ids: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			g.sheetIDs[s.Properties.Title] = s.Properties.SheetId
		}
	}
	id, ok = g.sheetIDs[title]
	if !ok {
		return 0, fmt.Errorf("sheet %s not found in spreadsheet", title)
	}
	return id, nil
}

func (g *Google) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func cellStrings(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch v := v.(type) {
			case nil:
			case string:
				cells[j] = v
			case float64:
				cells[j] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				cells[j] = strconv.FormatBool(v)
			default:
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}
