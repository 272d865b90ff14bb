package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

var fixedNow = time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type repoFake struct {
	docs []domain.Document

	created       *domain.Document
	processed     map[string]bool
	reviewed      map[string]time.Time
	healthCached  map[string]domain.HealthResult
	insightCached map[string][]domain.Insight

	createErr error
	listErr   error
	cacheErr  error
}

func newRepoFake(docs ...domain.Document) *repoFake {
	return &repoFake{
		docs:          docs,
		processed:     map[string]bool{},
		reviewed:      map[string]time.Time{},
		healthCached:  map[string]domain.HealthResult{},
		insightCached: map[string][]domain.Insight{},
	}
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyDoc := *doc
	f.created = &copyDoc
	f.docs = append(f.docs, copyDoc)
	return nil
}

func (f *repoFake) GetByID(_ context.Context, userID, id string) (*domain.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id && f.docs[i].UserID == userID {
			doc := f.docs[i]
			if reviewedAt, ok := f.reviewed[id]; ok {
				doc.LastReviewedAt = &reviewedAt
			}
			return &doc, nil
		}
	}
	return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New(id))
}

func (f *repoFake) ListByUser(_ context.Context, userID string) ([]domain.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Document
	for _, doc := range f.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *repoFake) ListUserIDs(context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, doc := range f.docs {
		if _, ok := seen[doc.UserID]; !ok {
			seen[doc.UserID] = struct{}{}
			out = append(out, doc.UserID)
		}
	}
	return out, nil
}

func (f *repoFake) MarkReviewed(_ context.Context, userID, id string, reviewedAt time.Time) error {
	if _, err := f.GetByID(context.Background(), userID, id); err != nil {
		return err
	}
	f.reviewed[id] = reviewedAt
	return nil
}

func (f *repoFake) MarkProcessed(_ context.Context, id string, processed bool, _ string) error {
	f.processed[id] = processed
	return nil
}

func (f *repoFake) CacheHealth(_ context.Context, id string, result domain.HealthResult, insights []domain.Insight, _ time.Time) error {
	if f.cacheErr != nil {
		return f.cacheErr
	}
	f.healthCached[id] = result
	f.insightCached[id] = insights
	return nil
}

type snapshotStoreFake struct {
	latest    *int
	saved     []domain.PreparednessResult
	latestErr error
	saveErr   error
}

func (f *snapshotStoreFake) LatestScore(context.Context, string) (*int, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *snapshotStoreFake) Save(_ context.Context, _ string, result domain.PreparednessResult, _ time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, result)
	return nil
}

type dismissalStoreFake struct {
	keys      map[string]struct{}
	dismissed []string
	err       error
}

func newDismissalStoreFake(keys ...string) *dismissalStoreFake {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &dismissalStoreFake{keys: set}
}

func (f *dismissalStoreFake) Dismiss(_ context.Context, _, key string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.keys[key] = struct{}{}
	f.dismissed = append(f.dismissed, key)
	return nil
}

func (f *dismissalStoreFake) ListKeys(context.Context, string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.keys, nil
}

type storageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishRecompute(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, userID)
	return nil
}

func (f *queueFake) SubscribeRecompute(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type exporterFake struct {
	exported *domain.WeeklyAudit
	data     []byte
	err      error
}

func (f *exporterFake) Export(audit domain.WeeklyAudit) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.exported = &audit
	return f.data, nil
}
