// Package httpadapter exposes the engagement service over HTTP. The
// caller identity comes from the X-User-Id header; authentication
// itself is handled upstream.
package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
	"github.com/okestraai/DocuIntelli-sub005/internal/observability/metrics"
)

const (
	userIDHeader = "X-User-Id"
	serviceName  = "engagement-api"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

type Router struct {
	ingestor   ports.DocumentIngestor
	documents  ports.DocumentReader
	reviewer   ports.DocumentReviewer
	engagement ports.EngagementReader
	gaps       ports.GapDismisser
	metrics    *metrics.HTTPServerMetrics
	opts       Options
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	documents ports.DocumentReader,
	reviewer ports.DocumentReviewer,
	engagement ports.EngagementReader,
	gaps ports.GapDismisser,
	m *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	return &Router{
		ingestor:   ingestor,
		documents:  documents,
		reviewer:   reviewer,
		engagement: engagement,
		gaps:       gaps,
		metrics:    m,
		opts:       opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.Handle("GET /metrics", rt.metrics.Handler())

	mux.HandleFunc("POST /v1/documents", rt.uploadDocument)
	mux.HandleFunc("GET /v1/documents", rt.listDocuments)
	mux.HandleFunc("GET /v1/documents/{id}", rt.getDocument)
	mux.HandleFunc("POST /v1/documents/{id}/review", rt.reviewDocument)
	mux.HandleFunc("GET /v1/documents/{id}/health", rt.documentHealth)
	mux.HandleFunc("GET /v1/documents/{id}/insights", rt.documentInsights)

	mux.HandleFunc("GET /v1/engagement/feed", rt.todayFeed)
	mux.HandleFunc("GET /v1/engagement/audit", rt.weeklyAudit)
	mux.HandleFunc("GET /v1/engagement/audit/export", rt.exportWeeklyAudit)
	mux.HandleFunc("POST /v1/engagement/gaps/{key}/dismiss", rt.dismissGap)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.opts.MaxInFlight, 50*time.Millisecond)
	handler = rt.rateLimitMiddleware(handler)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	req, err := uploadRequestFromForm(r, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		rt.metrics.RecordUpload(serviceName, fileHeader.Size, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, err := rt.ingestor.Upload(r.Context(), userID, req, file)
	rt.metrics.RecordUpload(serviceName, fileHeader.Size, err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	docs, err := rt.documents.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	doc, err := rt.documents.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) reviewDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	doc, err := rt.reviewer.MarkReviewed(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) documentHealth(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	health, err := rt.engagement.DocumentHealth(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

func (rt *Router) documentInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	insights, err := rt.engagement.DocumentInsights(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if insights == nil {
		insights = []domain.Insight{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (rt *Router) todayFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	items, err := rt.engagement.TodayFeed(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.FeedItem{}
	}
	rt.metrics.RecordFeedServed(serviceName, len(items))
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (rt *Router) weeklyAudit(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	audit, err := rt.engagement.WeeklyAudit(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, audit)
}

func (rt *Router) exportWeeklyAudit(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	data, err := rt.engagement.ExportWeeklyAudit(r.Context(), userID)
	rt.metrics.RecordAuditExport(serviceName, err)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="weekly-audit.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) dismissGap(w http.ResponseWriter, r *http.Request) {
	userID, ok := rt.requireUser(w, r)
	if !ok {
		return
	}

	key := r.PathValue("key")
	if err := rt.gaps.DismissGap(r.Context(), userID, key); err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordGapDismissal(serviceName, key)
	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed", "key": key})
}

func (rt *Router) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "header X-User-Id is required"})
		return "", false
	}
	return userID, true
}

// uploadRequestFromForm reads the optional metadata fields posted
// alongside the file. Dates accept YYYY-MM-DD or RFC 3339.
func uploadRequestFromForm(r *http.Request, filename, mimeType string) (ports.UploadRequest, error) {
	req := ports.UploadRequest{
		Filename:   filename,
		MimeType:   mimeType,
		Category:   r.FormValue("category"),
		IssuerName: r.FormValue("issuer_name"),
		OwnerName:  r.FormValue("owner_name"),
	}

	if raw := strings.TrimSpace(r.FormValue("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	var err error
	if req.ExpirationDate, err = parseDateField(r.FormValue("expiration_date"), "expiration_date"); err != nil {
		return ports.UploadRequest{}, err
	}
	if req.EffectiveDate, err = parseDateField(r.FormValue("effective_date"), "effective_date"); err != nil {
		return ports.UploadRequest{}, err
	}

	if raw := strings.TrimSpace(r.FormValue("review_cadence_days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return ports.UploadRequest{}, domain.WrapError(domain.ErrInvalidInput, "parse upload form",
				fmt.Errorf("review_cadence_days must be a positive integer"))
		}
		req.ReviewCadenceDays = &days
	}
	return req, nil
}

func parseDateField(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.WrapError(domain.ErrInvalidInput, "parse upload form",
		fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339, got %q", field, raw))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
