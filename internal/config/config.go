// Package config loads service settings from the environment (and an optional
// .env file).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendSheets   = "sheets"
	BackendWorkbook = "workbook"
)

type Config struct {
	ServerPort     string `mapstructure:"server_port"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
	StoreName      string `mapstructure:"public_store_name"`

	StoreBackend  string `mapstructure:"store_backend"`
	SpreadsheetID string `mapstructure:"google_sheets_spreadsheet_id"`
	ClientEmail   string `mapstructure:"google_sheets_client_email"`
	PrivateKey    string `mapstructure:"google_sheets_private_key"`
	WorkbookPath  string `mapstructure:"workbook_path"`

	SheetsRatePerSecond float64       `mapstructure:"sheets_rate_per_second"`
	SheetsBurst         int           `mapstructure:"sheets_burst"`
	SheetsTimeout       time.Duration `mapstructure:"sheets_timeout"`

	WriteRetries      int           `mapstructure:"write_retries"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	RecentOrdersLimit int           `mapstructure:"recent_orders_limit"`

	// DatabaseURL enables the Postgres order-code sequence when set.
	DatabaseURL string `mapstructure:"database_url"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"server_port":                  "8080",
	"allowed_origins":              "",
	"public_store_name":            "KHO ĐÔNG ALIBABA",
	"store_backend":                BackendSheets,
	"google_sheets_spreadsheet_id": "",
	"google_sheets_client_email":   "",
	"google_sheets_private_key":    "",
	"workbook_path":                "data/store.xlsx",
	"sheets_rate_per_second":       1.0,
	"sheets_burst":                 5,
	"sheets_timeout":               "15s",
	"write_retries":                2,
	"retry_delay":                  "300ms",
	"recent_orders_limit":          10,
	"database_url":                 "",
	"log_level":                    "info",
	"log_format":                   "json",
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with. Missing Sheets
// credentials are not an error here: reads fall back and writes fail.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSheets:
	case BackendWorkbook:
		if c.WorkbookPath == "" {
			return fmt.Errorf("WORKBOOK_PATH is required for the workbook backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", c.StoreBackend, BackendSheets, BackendWorkbook)
	}
	if c.WriteRetries < 0 {
		return fmt.Errorf("WRITE_RETRIES must not be negative")
	}
	return nil
}

// HasSheetsCredentials reports whether every Google Sheets setting is present.
func (c *Config) HasSheetsCredentials() bool {
	return c.SpreadsheetID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}
