package usecase

import (
	"context"
	"fmt"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/engagement"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
)

// EngagementUseCase serves the read-side engagement views (feed,
// audit, per-document health/insights) and gap dismissals. All views
// are computed fresh from current snapshots at request time.
type EngagementUseCase struct {
	repo       ports.DocumentRepository
	snapshots  ports.PreparednessSnapshotStore
	dismissals ports.GapDismissalStore
	exporter   ports.AuditExporter
	now        ports.Clock
}

func NewEngagementUseCase(
	repo ports.DocumentRepository,
	snapshots ports.PreparednessSnapshotStore,
	dismissals ports.GapDismissalStore,
	exporter ports.AuditExporter,
	now ports.Clock,
) *EngagementUseCase {
	return &EngagementUseCase{
		repo:       repo,
		snapshots:  snapshots,
		dismissals: dismissals,
		exporter:   exporter,
		now:        now,
	}
}

func (uc *EngagementUseCase) TodayFeed(ctx context.Context, userID string) ([]domain.FeedItem, error) {
	docs, dismissed, err := uc.loadPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	healthMap := engagement.ComputeAllDocumentHealth(docs, now)
	gaps := engagement.DetectGaps(docs, dismissed)
	return engagement.GenerateTodayFeed(docs, healthMap, gaps, now), nil
}

func (uc *EngagementUseCase) WeeklyAudit(ctx context.Context, userID string) (*domain.WeeklyAudit, error) {
	docs, dismissed, err := uc.loadPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	healthMap := engagement.ComputeAllDocumentHealth(docs, now)
	gaps := engagement.DetectGaps(docs, dismissed)

	previous, err := uc.snapshots.LatestScore(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load previous preparedness score: %w", err)
	}
	preparedness := engagement.ComputePreparedness(docs, healthMap, previous, now)

	audit := engagement.CompileWeeklyAudit(docs, healthMap, gaps, preparedness, now)
	return &audit, nil
}

func (uc *EngagementUseCase) ExportWeeklyAudit(ctx context.Context, userID string) ([]byte, error) {
	audit, err := uc.WeeklyAudit(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.Export(*audit)
	if err != nil {
		return nil, fmt.Errorf("export weekly audit: %w", err)
	}
	return data, nil
}

func (uc *EngagementUseCase) DocumentHealth(ctx context.Context, userID, id string) (*domain.HealthResult, error) {
	doc, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	result := engagement.ComputeDocumentHealth(*doc, uc.now())
	return &result, nil
}

func (uc *EngagementUseCase) DocumentInsights(ctx context.Context, userID, id string) ([]domain.Insight, error) {
	doc, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return engagement.GenerateDocumentInsights(*doc, uc.now()), nil
}

func (uc *EngagementUseCase) DismissGap(ctx context.Context, userID, key string) error {
	if !engagement.KnownGapKey(key) {
		return domain.WrapError(domain.ErrUnknownGapKey, "dismiss gap", fmt.Errorf("key %q", key))
	}
	if err := uc.dismissals.Dismiss(ctx, userID, key, uc.now()); err != nil {
		return fmt.Errorf("persist gap dismissal: %w", err)
	}
	return nil
}

func (uc *EngagementUseCase) loadPortfolio(ctx context.Context, userID string) ([]domain.Document, map[string]struct{}, error) {
	docs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	dismissed, err := uc.dismissals.ListKeys(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list dismissed gap keys: %w", err)
	}
	return docs, dismissed, nil
}
