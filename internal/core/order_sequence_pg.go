package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pgSequencer struct {
	pool *pgxpool.Pool
}

// NewPgSequencer returns a Sequencer backed by the order_code_sequences table.
// Reservations are atomic across server instances sharing the database.
func NewPgSequencer(pool *pgxpool.Pool) Sequencer {
	return &pgSequencer{pool: pool}
}

func (s *pgSequencer) Next(ctx context.Context, prefix string, floor int) (int, error) {
	var next int
	query := `
		INSERT INTO order_code_sequences (prefix, last_number)
		VALUES ($1, $2 + 1)
		ON CONFLICT (prefix)
		DO UPDATE SET last_number = GREATEST(order_code_sequences.last_number + 1, EXCLUDED.last_number),
		              updated_at = NOW()
		RETURNING last_number
	`
	if err := s.pool.QueryRow(ctx, query, prefix, floor).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to reserve order number for %s: %w", prefix, err)
	}
	return next, nil
}
