package ports

import (
	"context"
	"io"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// Clock supplies "now" to the use cases. The engagement engine never
// reads a wall clock; every temporal input flows through here.
type Clock func() time.Time

// DocumentRepository persists and reads document snapshots.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, userID, id string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	MarkReviewed(ctx context.Context, userID, id string, reviewedAt time.Time) error
	MarkProcessed(ctx context.Context, id string, processed bool, errMessage string) error
	CacheHealth(ctx context.Context, id string, result domain.HealthResult, insights []domain.Insight, computedAt time.Time) error
}

// PreparednessSnapshotStore keeps the dated history of portfolio
// scores used for trend computation.
type PreparednessSnapshotStore interface {
	LatestScore(ctx context.Context, userID string) (*int, error)
	Save(ctx context.Context, userID string, result domain.PreparednessResult, takenAt time.Time) error
}

// GapDismissalStore records which gap suggestions a user dismissed.
type GapDismissalStore interface {
	Dismiss(ctx context.Context, userID, key string, dismissedAt time.Time) error
	ListKeys(ctx context.Context, userID string) (map[string]struct{}, error)
}

// ObjectStorage stores uploaded document blobs.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes per-user recompute events.
type MessageQueue interface {
	PublishRecompute(ctx context.Context, userID string) error
	SubscribeRecompute(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document blob.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// AuditExporter renders a weekly audit into a downloadable artifact
// (e.g. an xlsx workbook). Delivery is outside this system.
type AuditExporter interface {
	Export(audit domain.WeeklyAudit) ([]byte, error)
}
