package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type DismissalRepository struct {
	db *sql.DB
}

func NewDismissalRepository(db *sql.DB) *DismissalRepository {
	return &DismissalRepository{db: db}
}

// Dismiss is idempotent: repeating a dismissal refreshes its timestamp.
func (r *DismissalRepository) Dismiss(ctx context.Context, userID, key string, dismissedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO gap_dismissals (user_id, gap_key, dismissed_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, gap_key) DO UPDATE SET dismissed_at = EXCLUDED.dismissed_at
`, userID, key, dismissedAt)
	if err != nil {
		return fmt.Errorf("insert dismissal: %w", err)
	}
	return nil
}

func (r *DismissalRepository) ListKeys(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT gap_key FROM gap_dismissals WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query dismissals: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan dismissal: %w", err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dismissals: %w", err)
	}
	return keys, nil
}
