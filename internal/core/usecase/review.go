package usecase

import (
	"context"
	"fmt"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
)

// ReviewDocumentUseCase stamps a document as reviewed and enqueues a
// recompute so the health caches catch up.
type ReviewDocumentUseCase struct {
	repo  ports.DocumentRepository
	queue ports.MessageQueue
	now   ports.Clock
}

func NewReviewDocumentUseCase(
	repo ports.DocumentRepository,
	queue ports.MessageQueue,
	now ports.Clock,
) *ReviewDocumentUseCase {
	return &ReviewDocumentUseCase{
		repo:  repo,
		queue: queue,
		now:   now,
	}
}

func (uc *ReviewDocumentUseCase) MarkReviewed(ctx context.Context, userID, id string) (*domain.Document, error) {
	reviewedAt := uc.now()
	if err := uc.repo.MarkReviewed(ctx, userID, id, reviewedAt); err != nil {
		return nil, fmt.Errorf("mark reviewed: %w", err)
	}
	doc, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}
	if err := uc.queue.PublishRecompute(ctx, userID); err != nil {
		return nil, fmt.Errorf("publish recompute event: %w", err)
	}
	return doc, nil
}
