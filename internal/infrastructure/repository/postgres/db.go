package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables used by the engagement service.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082301)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	category TEXT NOT NULL,
	tags JSONB NOT NULL DEFAULT '[]'::jsonb,
	issuer_name TEXT,
	owner_name TEXT,
	expiration_date TIMESTAMPTZ,
	effective_date TIMESTAMPTZ,
	uploaded_at TIMESTAMPTZ NOT NULL,
	last_reviewed_at TIMESTAMPTZ,
	review_cadence_days INTEGER,
	status TEXT NOT NULL,
	processed BOOLEAN NOT NULL DEFAULT FALSE,
	error_message TEXT,
	health_state TEXT,
	health_score INTEGER NOT NULL DEFAULT 0,
	health_computed_at TIMESTAMPTZ,
	insights_cache JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id);
CREATE INDEX IF NOT EXISTS idx_documents_expiration ON documents(expiration_date);

CREATE TABLE IF NOT EXISTS preparedness_snapshots (
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	score INTEGER NOT NULL,
	trend TEXT NOT NULL,
	factors JSONB NOT NULL,
	taken_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_user_taken ON preparedness_snapshots(user_id, taken_at DESC);

CREATE TABLE IF NOT EXISTS gap_dismissals (
	user_id TEXT NOT NULL,
	gap_key TEXT NOT NULL,
	dismissed_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, gap_key)
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
