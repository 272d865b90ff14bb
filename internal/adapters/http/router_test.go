package httpadapter

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
	"github.com/okestraai/DocuIntelli-sub005/internal/observability/metrics"
)

type ingestorStub struct {
	uploaded []ports.UploadRequest
	err      error
}

func (s *ingestorStub) Upload(_ context.Context, userID string, req ports.UploadRequest, body io.Reader) (*domain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploaded = append(s.uploaded, req)
	_, _ = io.Copy(io.Discard, body)
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:         "doc-1",
		UserID:     userID,
		Filename:   req.Filename,
		Category:   domain.ParseCategory(req.Category),
		Status:     domain.StatusActive,
		Processed:  true,
		UploadedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type readerStub struct {
	docs map[string]*domain.Document
}

func (s *readerStub) GetByID(_ context.Context, userID, id string) (*domain.Document, error) {
	doc, ok := s.docs[id]
	if !ok || doc.UserID != userID {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", domain.ErrDocumentNotFound)
	}
	return doc, nil
}

func (s *readerStub) ListByUser(_ context.Context, userID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, doc := range s.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

type reviewerStub struct {
	reviewed []string
	err      error
}

func (s *reviewerStub) MarkReviewed(_ context.Context, userID, id string) (*domain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reviewed = append(s.reviewed, id)
	return &domain.Document{ID: id, UserID: userID, Status: domain.StatusActive}, nil
}

type engagementStub struct {
	feed     []domain.FeedItem
	audit    *domain.WeeklyAudit
	export   []byte
	health   *domain.HealthResult
	insights []domain.Insight
	err      error
}

func (s *engagementStub) TodayFeed(context.Context, string) ([]domain.FeedItem, error) {
	return s.feed, s.err
}

func (s *engagementStub) WeeklyAudit(context.Context, string) (*domain.WeeklyAudit, error) {
	return s.audit, s.err
}

func (s *engagementStub) ExportWeeklyAudit(context.Context, string) ([]byte, error) {
	return s.export, s.err
}

func (s *engagementStub) DocumentHealth(context.Context, string, string) (*domain.HealthResult, error) {
	return s.health, s.err
}

func (s *engagementStub) DocumentInsights(context.Context, string, string) ([]domain.Insight, error) {
	return s.insights, s.err
}

type dismisserStub struct {
	dismissed []string
	err       error
}

func (s *dismisserStub) DismissGap(_ context.Context, _ string, key string) error {
	if s.err != nil {
		return s.err
	}
	s.dismissed = append(s.dismissed, key)
	return nil
}

type routerFixture struct {
	ingestor   *ingestorStub
	reader     *readerStub
	reviewer   *reviewerStub
	engagement *engagementStub
	dismisser  *dismisserStub
}

func newTestRouter(fx *routerFixture, opts Options) http.Handler {
	if fx.ingestor == nil {
		fx.ingestor = &ingestorStub{}
	}
	if fx.reader == nil {
		fx.reader = &readerStub{docs: map[string]*domain.Document{}}
	}
	if fx.reviewer == nil {
		fx.reviewer = &reviewerStub{}
	}
	if fx.engagement == nil {
		fx.engagement = &engagementStub{}
	}
	if fx.dismisser == nil {
		fx.dismisser = &dismisserStub{}
	}
	if opts.RateLimitRPS == 0 {
		opts.RateLimitRPS = 1000
	}
	if opts.RateLimitBurst == 0 {
		opts.RateLimitBurst = 1000
	}
	if opts.MaxInFlight == 0 {
		opts.MaxInFlight = 16
	}

	rt := NewRouter(
		fx.ingestor,
		fx.reader,
		fx.reviewer,
		fx.engagement,
		fx.dismisser,
		metrics.NewHTTPServerMetrics("engagement-api-test"),
		opts,
	)
	return rt.Handler()
}
