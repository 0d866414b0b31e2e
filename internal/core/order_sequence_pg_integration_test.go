package core_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"retail-pos/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database; the sequence table is truncated.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	migration, err := os.ReadFile("../../migrations/001_order_code_sequences.sql")
	if err != nil {
		t.Fatalf("Failed to read migration: %v", err)
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		t.Fatalf("Failed to apply migration: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE TABLE order_code_sequences`); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool
}

func TestPgSequencer_FloorAndMonotonic(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	seq := core.NewPgSequencer(pool)
	ctx := context.Background()

	first, err := seq.Next(ctx, "20250115", 4)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	second, err := seq.Next(ctx, "20250115", 0)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first != 5 || second != 6 {
		t.Errorf("got %d, %d; want 5, 6", first, second)
	}
}

func TestPgSequencer_ConcurrentReservationsAreUnique(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	seq := core.NewPgSequencer(pool)
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx, "20250116", 0)
			if err != nil {
				t.Errorf("Next: %v", err)
				return
			}
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Errorf("expected %d distinct numbers, got %d", workers, len(seen))
	}
	for n := 1; n <= workers; n++ {
		if !seen[n] {
			t.Errorf("number %d was never reserved", n)
		}
	}
}
