// seed-store prepares an empty spreadsheet store: missing header rows are
// written and an empty catalog or branch list is filled with the defaults.
// Tables that already hold data are not touched.
//
// Usage: go run ./cmd/seed-store
package main

import (
	"context"
	"fmt"
	"os"

	"retail-pos/internal/app"
	"retail-pos/internal/config"
	"retail-pos/internal/core"
	"retail-pos/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, "console")

	ctx := context.Background()
	gw, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	report, err := core.SeedStore(ctx, gw, core.DefaultLayout)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("headers", report.Headers).
		Int("products", report.Products).
		Int("branches", report.Branches).
		Msg("store seeded")
}
