package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// LatestScore returns the most recent preparedness score for the user,
// or nil when no snapshot has been taken yet.
func (r *SnapshotRepository) LatestScore(ctx context.Context, userID string) (*int, error) {
	var score int
	err := r.db.QueryRowContext(ctx, `
SELECT score
FROM preparedness_snapshots
WHERE user_id = $1
ORDER BY taken_at DESC
LIMIT 1
`, userID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest score: %w", err)
	}
	return &score, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, userID string, result domain.PreparednessResult, takenAt time.Time) error {
	factorsJSON, err := json.Marshal(result.Factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO preparedness_snapshots (user_id, score, trend, factors, taken_at)
VALUES ($1, $2, $3, $4, $5)
`, userID, result.Score, string(result.Trend), factorsJSON, takenAt)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}
