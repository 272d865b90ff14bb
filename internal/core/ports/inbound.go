package ports

import (
	"context"
	"io"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// UploadRequest carries the metadata accepted alongside a document
// upload. Optional fields stay nil/empty when the user omitted them.
type UploadRequest struct {
	Filename          string
	MimeType          string
	Category          string
	Tags              []string
	IssuerName        string
	OwnerName         string
	ExpirationDate    *time.Time
	EffectiveDate     *time.Time
	ReviewCadenceDays *int
}

// DocumentIngestor is the inbound contract for document uploads.
type DocumentIngestor interface {
	Upload(ctx context.Context, userID string, req UploadRequest, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for documents.
type DocumentReader interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
}

// DocumentReviewer stamps a document as reviewed.
type DocumentReviewer interface {
	MarkReviewed(ctx context.Context, userID, id string) (*domain.Document, error)
}

// EngagementReader serves the computed engagement views.
type EngagementReader interface {
	TodayFeed(ctx context.Context, userID string) ([]domain.FeedItem, error)
	WeeklyAudit(ctx context.Context, userID string) (*domain.WeeklyAudit, error)
	ExportWeeklyAudit(ctx context.Context, userID string) ([]byte, error)
	DocumentHealth(ctx context.Context, userID, id string) (*domain.HealthResult, error)
	DocumentInsights(ctx context.Context, userID, id string) ([]domain.Insight, error)
}

// GapDismisser records a user's decision to hide a gap suggestion.
type GapDismisser interface {
	DismissGap(ctx context.Context, userID, key string) error
}

// EngagementRecomputer runs the engine over one user's portfolio and
// persists the results.
type EngagementRecomputer interface {
	RecomputeForUser(ctx context.Context, userID string) (*domain.PreparednessResult, error)
}
