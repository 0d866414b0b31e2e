package app

import (
	"context"
	"errors"
	"fmt"

	"retail-pos/internal/config"
	"retail-pos/internal/core"
	"retail-pos/internal/db"
	"retail-pos/internal/sheets"

	"github.com/rs/zerolog"
)

// Bootstrap builds the gateway and services described by cfg. The returned
// cleanup releases the workbook file and the database pool, if any.
func Bootstrap(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ApplicationService, func(), error) {
	gw, closeStore, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	closers := []func(){closeStore}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var seq core.Sequencer
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("order sequence database: %w", err)
		}
		closers = append(closers, pool.Close)
		seq = core.NewPgSequencer(pool)
		log.Info().Msg("order codes reserved through Postgres")
	} else {
		seq = core.NewMemorySequencer()
	}

	layout := core.DefaultLayout
	catalog := core.NewCatalogService(gw, layout, log.With().Str("service", "catalog").Logger())
	codes := core.NewOrderCodeGenerator(gw, layout, seq, log.With().Str("service", "order_code").Logger())
	ledger := core.NewSalesLedger(gw, layout, core.LedgerConfig{
		RecentLimit:  cfg.RecentOrdersLimit,
		WriteRetries: cfg.WriteRetries,
		RetryDelay:   cfg.RetryDelay,
	}, log.With().Str("service", "ledger").Logger())
	reporting := core.NewReportingService(ledger)

	return NewAppService(catalog, codes, ledger, reporting), cleanup, nil
}

// OpenStore opens the spreadsheet store selected by cfg, rate limited. The
// returned close func releases a workbook file and is safe to call on any
// backend.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (sheets.Gateway, func(), error) {
	gw, err := openGateway(ctx, cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	closeStore := func() {}
	if c, ok := gw.(interface{ Close() error }); ok {
		closeStore = func() { _ = c.Close() }
	}
	return sheets.WithRateLimit(gw, cfg.SheetsRatePerSecond, cfg.SheetsBurst), closeStore, nil
}

func openGateway(ctx context.Context, cfg *config.Config, log zerolog.Logger) (sheets.Gateway, error) {
	switch cfg.StoreBackend {
	case config.BackendWorkbook:
		wb, err := sheets.OpenWorkbook(cfg.WorkbookPath)
		if err != nil {
			return nil, err
		}
		for name, header := range core.DefaultLayout.Headers() {
			if err := wb.EnsureSheet(name, header); err != nil {
				_ = wb.Close()
				return nil, err
			}
		}
		log.Info().Str("path", cfg.WorkbookPath).Msg("using local workbook store")
		return wb, nil

	default:
		g, err := sheets.NewGoogle(ctx, sheets.GoogleConfig{
			SpreadsheetID: cfg.SpreadsheetID,
			ClientEmail:   cfg.ClientEmail,
			PrivateKey:    cfg.PrivateKey,
			Timeout:       cfg.SheetsTimeout,
		})
		if errors.Is(err, sheets.ErrNoCredentials) {
			log.Warn().Msg("Google Sheets credentials missing: reads use fallback data, writes will fail")
			return sheets.Unavailable(err), nil
		}
		if err != nil {
			return nil, err
		}
		log.Info().Msg("using Google Sheets store")
		return g, nil
	}
}
