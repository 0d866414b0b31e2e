package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.StoreBackend != BackendSheets {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendSheets)
	}
	if cfg.SheetsTimeout != 15*time.Second || cfg.RetryDelay != 300*time.Millisecond {
		t.Errorf("durations = %s / %s", cfg.SheetsTimeout, cfg.RetryDelay)
	}
	if cfg.RecentOrdersLimit != 10 || cfg.WriteRetries != 2 {
		t.Errorf("limits = %d / %d", cfg.RecentOrdersLimit, cfg.WriteRetries)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Workbook")
	t.Setenv("WORKBOOK_PATH", "/tmp/pos.xlsx")
	t.Setenv("SHEETS_TIMEOUT", "3s")
	t.Setenv("SHEETS_RATE_PER_SECOND", "0.5")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet")
	t.Setenv("GOOGLE_SHEETS_CLIENT_EMAIL", "svc@example.iam.gserviceaccount.com")
	t.Setenv("GOOGLE_SHEETS_PRIVATE_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "9090" || cfg.StoreBackend != BackendWorkbook || cfg.WorkbookPath != "/tmp/pos.xlsx" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SheetsTimeout != 3*time.Second || cfg.SheetsRatePerSecond != 0.5 {
		t.Errorf("timeout/rate = %s / %v", cfg.SheetsTimeout, cfg.SheetsRatePerSecond)
	}
	if !cfg.HasSheetsCredentials() {
		t.Error("credentials should be reported present")
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		{StoreBackend: "mysql"},
		{StoreBackend: BackendWorkbook},
		{StoreBackend: BackendSheets, WriteRetries: -1},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v): expected error", c)
		}
	}
}
