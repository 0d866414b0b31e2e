package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"retail-pos/internal/adapters/cli"
	"retail-pos/internal/adapters/repl"
	"retail-pos/internal/app"
	"retail-pos/internal/config"
	"retail-pos/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// Log to stderr so command output on stdout stays clean.
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, "console")

	ctx := context.Background()
	svc, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if len(os.Args) < 2 {
		repl.Run(ctx, svc, bufio.NewReader(os.Stdin), os.Stdout)
		cleanup()
		return
	}

	err = cli.Run(ctx, svc, os.Args[1:], os.Stdout)
	cleanup()
	if err != nil {
		log.Fatal(err)
	}
}
