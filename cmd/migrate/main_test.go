package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExtractVersion(t *testing.T) {
	if v, err := extractVersion("001_order_code_sequences.sql"); err != nil || v != "001" {
		t.Errorf("extractVersion = %q, %v", v, err)
	}
	if _, err := extractVersion("nounderscore.sql"); err == nil {
		t.Error("expected error for a name without version prefix")
	}
}

func TestDiscoverMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := discoverMigrations(dir)
	if err != nil {
		t.Fatalf("discoverMigrations: %v", err)
	}
	if want := []string{"001_a.sql", "002_b.sql"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if err := os.WriteFile(filepath.Join(dir, "002_c.sql"), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := discoverMigrations(dir); err == nil {
		t.Error("expected duplicate version error")
	}
}
