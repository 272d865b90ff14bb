package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	queue     ports.MessageQueue
	now       ports.Clock
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	queue ports.MessageQueue,
	now ports.Clock,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		queue:     queue,
		now:       now,
	}
}

// Upload stores the blob and metadata for a new document, verifies the
// file is readable, and enqueues an engagement recompute for the user.
// Extraction failures do not fail the upload; the document is kept
// with processed=false so the user can replace the file later.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	userID string,
	req ports.UploadRequest,
	body io.Reader,
) (*domain.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", fmt.Errorf("user id is required"))
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", fmt.Errorf("filename is required"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(req.Filename))
	now := uc.now()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:                id,
		UserID:            userID,
		Filename:          req.Filename,
		MimeType:          req.MimeType,
		StoragePath:       storageKey,
		Category:          domain.ParseCategory(req.Category),
		Tags:              req.Tags,
		IssuerName:        strings.TrimSpace(req.IssuerName),
		OwnerName:         strings.TrimSpace(req.OwnerName),
		ExpirationDate:    req.ExpirationDate,
		EffectiveDate:     req.EffectiveDate,
		ReviewCadenceDays: req.ReviewCadenceDays,
		UploadedAt:        now,
		Status:            domain.StatusUploaded,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if _, err := uc.extractor.Extract(ctx, doc); err != nil {
		if markErr := uc.repo.MarkProcessed(ctx, doc.ID, false, err.Error()); markErr != nil {
			return nil, fmt.Errorf("mark extraction failure: %w", markErr)
		}
		doc.Status = domain.StatusFailed
		doc.Error = err.Error()
	} else {
		if err := uc.repo.MarkProcessed(ctx, doc.ID, true, ""); err != nil {
			return nil, fmt.Errorf("mark processed: %w", err)
		}
		doc.Processed = true
		doc.Status = domain.StatusActive
	}

	if err := uc.queue.PublishRecompute(ctx, userID); err != nil {
		return nil, fmt.Errorf("publish recompute event: %w", err)
	}

	return doc, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
