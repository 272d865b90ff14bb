package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

func TestTodayFeedReturnsItems(t *testing.T) {
	fx := &routerFixture{engagement: &engagementStub{feed: []domain.FeedItem{
		{Kind: domain.FeedItemDocumentAlert, Severity: domain.SeverityCritical, Title: "Needs attention: policy.pdf", DocumentID: "doc-1"},
		{Kind: domain.FeedItemGapSuggestion, Severity: domain.SeverityWarning, Title: "Suggested: Renter insurance policy", GapKey: "renter_insurance"},
	}}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/engagement/feed", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload struct {
		Items []domain.FeedItem `json:"items"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(payload.Items))
	}
	if payload.Items[0].Severity != domain.SeverityCritical {
		t.Fatalf("expected critical first, got %s", payload.Items[0].Severity)
	}
}

func TestTodayFeedEmptyPortfolioReturnsEmptyArray(t *testing.T) {
	handler := newTestRouter(&routerFixture{}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/engagement/feed", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(payload["items"]) != "[]" {
		t.Fatalf("expected empty json array, got %s", payload["items"])
	}
}

func TestWeeklyAuditEndpoint(t *testing.T) {
	generatedAt := time.Date(2026, 8, 17, 7, 0, 0, 0, time.UTC)
	fx := &routerFixture{engagement: &engagementStub{audit: &domain.WeeklyAudit{
		HealthSummary: map[domain.HealthState]int{domain.HealthHealthy: 2},
		Preparedness:  domain.PreparednessResult{Score: 81, Trend: domain.TrendStable},
		GeneratedAt:   generatedAt,
	}}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/engagement/audit", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var audit domain.WeeklyAudit
	if err := json.Unmarshal(res.Body.Bytes(), &audit); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if audit.Preparedness.Score != 81 {
		t.Fatalf("expected score 81, got %d", audit.Preparedness.Score)
	}
}

func TestExportWeeklyAuditSetsDownloadHeaders(t *testing.T) {
	fx := &routerFixture{engagement: &engagementStub{export: []byte("PK workbook bytes")}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/engagement/audit/export", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("expected xlsx content type, got %s", got)
	}
	if got := res.Header().Get("Content-Disposition"); got == "" {
		t.Fatalf("expected Content-Disposition header")
	}
	if res.Body.Len() == 0 {
		t.Fatalf("expected workbook bytes in body")
	}
}

func TestDismissGapKnownKey(t *testing.T) {
	fx := &routerFixture{}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodPost, "/v1/engagement/gaps/renter_insurance/dismiss", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if len(fx.dismisser.dismissed) != 1 || fx.dismisser.dismissed[0] != "renter_insurance" {
		t.Fatalf("expected dismissal recorded, got %v", fx.dismisser.dismissed)
	}
}

func TestDismissGapUnknownKeyReturns404(t *testing.T) {
	fx := &routerFixture{dismisser: &dismisserStub{
		err: domain.WrapError(domain.ErrUnknownGapKey, "dismiss gap", domain.ErrUnknownGapKey),
	}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodPost, "/v1/engagement/gaps/not_a_key/dismiss", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown gap key, got %d", res.Code)
	}
}

func TestDocumentHealthEndpoint(t *testing.T) {
	fx := &routerFixture{engagement: &engagementStub{health: &domain.HealthResult{
		Score:   60,
		State:   domain.HealthWatch,
		Reasons: []string{"Expires in 5 days"},
	}}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/health", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var health domain.HealthResult
	if err := json.Unmarshal(res.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if health.Score != 60 || health.State != domain.HealthWatch {
		t.Fatalf("unexpected health %+v", health)
	}
}

func TestDocumentInsightsEndpoint(t *testing.T) {
	fx := &routerFixture{engagement: &engagementStub{insights: []domain.Insight{
		{Type: domain.InsightExpirationWarning, Severity: domain.SeverityCritical, Message: "Expires in 5 days"},
	}}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/insights", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload struct {
		Insights []domain.Insight `json:"insights"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Insights) != 1 || payload.Insights[0].Type != domain.InsightExpirationWarning {
		t.Fatalf("unexpected insights %+v", payload.Insights)
	}
}

func TestEngagementErrorMapsToServiceUnavailable(t *testing.T) {
	fx := &routerFixture{engagement: &engagementStub{
		err: domain.WrapError(domain.ErrTemporary, "list documents", domain.ErrTemporary),
	}}
	handler := newTestRouter(fx, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/engagement/feed", nil)
	req.Header.Set("X-User-Id", "user-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}
