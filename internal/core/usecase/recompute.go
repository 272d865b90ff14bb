package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/engagement"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
)

// RecomputeEngagementUseCase runs the engagement engine over one
// user's portfolio, writes health and insight caches back onto the
// document rows, and appends a dated preparedness snapshot. The engine
// itself is pure, so re-running after a failure is safe.
type RecomputeEngagementUseCase struct {
	repo      ports.DocumentRepository
	snapshots ports.PreparednessSnapshotStore
	now       ports.Clock
}

func NewRecomputeEngagementUseCase(
	repo ports.DocumentRepository,
	snapshots ports.PreparednessSnapshotStore,
	now ports.Clock,
) *RecomputeEngagementUseCase {
	return &RecomputeEngagementUseCase{
		repo:      repo,
		snapshots: snapshots,
		now:       now,
	}
}

func (uc *RecomputeEngagementUseCase) RecomputeForUser(ctx context.Context, userID string) (*domain.PreparednessResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "recompute engagement", fmt.Errorf("user id is required"))
	}
	now := uc.now()

	docs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	healthMap := engagement.ComputeAllDocumentHealth(docs, now)
	for _, doc := range docs {
		insights := engagement.GenerateDocumentInsights(doc, now)
		if err := uc.repo.CacheHealth(ctx, doc.ID, healthMap[doc.ID], insights, now); err != nil {
			return nil, fmt.Errorf("cache health for document %s: %w", doc.ID, err)
		}
	}

	previous, err := uc.snapshots.LatestScore(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load previous preparedness score: %w", err)
	}

	result := engagement.ComputePreparedness(docs, healthMap, previous, now)
	if err := uc.snapshots.Save(ctx, userID, result, now); err != nil {
		return nil, fmt.Errorf("save preparedness snapshot: %w", err)
	}
	return &result, nil
}
