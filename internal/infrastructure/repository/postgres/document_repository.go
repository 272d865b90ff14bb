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

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, user_id, filename, mime_type, storage_path, category, tags,
	issuer_name, owner_name, expiration_date, effective_date, uploaded_at, last_reviewed_at,
	review_cadence_days, status, processed, error_message, health_state, health_score,
	health_computed_at, insights_cache, created_at, updated_at`

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	tagsJSON, err := json.Marshal(tagsOrEmpty(doc.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	insightsJSON, err := json.Marshal(insightsOrEmpty(doc.InsightsCache))
	if err != nil {
		return fmt.Errorf("marshal insights cache: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (`+documentColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
`,
		doc.ID, doc.UserID, doc.Filename, doc.MimeType, doc.StoragePath, string(doc.Category), tagsJSON,
		nullString(doc.IssuerName), nullString(doc.OwnerName), nullTime(doc.ExpirationDate),
		nullTime(doc.EffectiveDate), doc.UploadedAt, nullTime(doc.LastReviewedAt),
		nullInt(doc.ReviewCadenceDays), string(doc.Status), doc.Processed, nullString(doc.Error),
		nullString(string(doc.HealthState)), doc.HealthScore, nullTime(doc.HealthComputedAt),
		insightsJSON, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, userID, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE id = $1 AND user_id = $2
`, id, userID)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE user_id = $1
ORDER BY created_at
`, userID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (r *DocumentRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM documents ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query user ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return out, nil
}

func (r *DocumentRepository) MarkReviewed(ctx context.Context, userID, id string, reviewedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET last_reviewed_at = $3, updated_at = $3
WHERE id = $1 AND user_id = $2
`, id, userID, reviewedAt)
	if err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}
	return requireRow(result, "mark reviewed", id)
}

func (r *DocumentRepository) MarkProcessed(ctx context.Context, id string, processed bool, errMessage string) error {
	status := domain.StatusActive
	if !processed {
		status = domain.StatusFailed
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET processed = $2, status = $3, error_message = $4, updated_at = $5
WHERE id = $1
`, id, processed, string(status), nullString(errMessage), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return requireRow(result, "mark processed", id)
}

func (r *DocumentRepository) CacheHealth(ctx context.Context, id string, health domain.HealthResult, insights []domain.Insight, computedAt time.Time) error {
	insightsJSON, err := json.Marshal(insightsOrEmpty(insights))
	if err != nil {
		return fmt.Errorf("marshal insights cache: %w", err)
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET health_state = $2, health_score = $3, health_computed_at = $4, insights_cache = $5, updated_at = $4
WHERE id = $1
`, id, string(health.State), health.Score, computedAt, insightsJSON)
	if err != nil {
		return fmt.Errorf("cache health: %w", err)
	}
	return requireRow(result, "cache health", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		doc          domain.Document
		category     string
		status       string
		tagsRaw      []byte
		insightsRaw  []byte
		issuer       sql.NullString
		owner        sql.NullString
		expiration   sql.NullTime
		effective    sql.NullTime
		lastReviewed sql.NullTime
		cadence      sql.NullInt64
		errMessage   sql.NullString
		healthState  sql.NullString
		computedAt   sql.NullTime
	)

	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Filename, &doc.MimeType, &doc.StoragePath, &category, &tagsRaw,
		&issuer, &owner, &expiration, &effective, &doc.UploadedAt, &lastReviewed,
		&cadence, &status, &doc.Processed, &errMessage, &healthState, &doc.HealthScore,
		&computedAt, &insightsRaw, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsRaw, &doc.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(insightsRaw, &doc.InsightsCache); err != nil {
		return nil, fmt.Errorf("unmarshal insights cache: %w", err)
	}

	doc.Category = domain.Category(category)
	doc.Status = domain.DocumentStatus(status)
	doc.IssuerName = issuer.String
	doc.OwnerName = owner.String
	doc.Error = errMessage.String
	doc.HealthState = domain.HealthState(healthState.String)
	doc.ExpirationDate = timeOrNil(expiration)
	doc.EffectiveDate = timeOrNil(effective)
	doc.LastReviewedAt = timeOrNil(lastReviewed)
	doc.HealthComputedAt = timeOrNil(computedAt)
	if cadence.Valid {
		days := int(cadence.Int64)
		doc.ReviewCadenceDays = &days
	}
	return &doc, nil
}

func requireRow(result sql.Result, operation, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id %s", id))
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func insightsOrEmpty(insights []domain.Insight) []domain.Insight {
	if insights == nil {
		return []domain.Insight{}
	}
	return insights
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func timeOrNil(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
