package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer runs a statement. *pgxpool.Pool and pgxmock pools implement it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS refresh_runs (
		id          UUID PRIMARY KEY,
		source      VARCHAR(32) NOT NULL,
		generation  BIGINT NOT NULL,
		status      VARCHAR(16) NOT NULL,
		row_count   INTEGER NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT '',
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_runs_started_at ON refresh_runs (started_at DESC)`,
	`CREATE TABLE IF NOT EXISTS chat_transcripts (
		id         UUID PRIMARY KEY,
		question   TEXT NOT NULL,
		answer     TEXT NOT NULL,
		chart      JSONB,
		follow_ups TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_transcripts_created_at ON chat_transcripts (created_at DESC)`,
}

// Migrate creates the history tables if they do not exist.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
