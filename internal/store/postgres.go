package store

import (
	"context"
	"errors"
	"fmt"

	"backend-greentransit/internal/db"

	"github.com/jackc/pgx/v5"
)

// Postgres stores documents in the kv_store table. Each Commit runs in a
// single transaction.
type Postgres struct {
	db db.TxQuerier
}

func NewPostgres(q db.TxQuerier) *Postgres {
	return &Postgres{db: q}
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var raw string
	err := p.db.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key=$1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(raw), true, nil
}

func (p *Postgres) Commit(ctx context.Context, entries map[string][]byte) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	for _, key := range sortedKeys(entries) {
		_, err := tx.Exec(ctx, `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2::jsonb, NOW())
			ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
		`, key, string(entries[key]))
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
