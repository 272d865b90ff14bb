package domain

import "time"

// HealthState is the coarse classification of one document's upkeep
// status, derived from its health score through fixed thresholds.
type HealthState string

const (
	HealthHealthy  HealthState = "healthy"
	HealthWatch    HealthState = "watch"
	HealthRisk     HealthState = "risk"
	HealthCritical HealthState = "critical"
)

// HealthResult is the outcome of scoring a single document. Score is
// always within [0,100] and State is a pure function of Score. Reasons
// carries one human-readable entry per penalty that was applied.
type HealthResult struct {
	Score   int         `json:"score"`
	State   HealthState `json:"state"`
	Reasons []string    `json:"reasons,omitempty"`
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PreparednessFactors are the four weighted sub-scores, each bounded
// to [0,25]. Their sum approximates the total preparedness score.
type PreparednessFactors struct {
	MetadataCompleteness float64 `json:"metadata_completeness"`
	ExpirationCoverage   float64 `json:"expiration_coverage"`
	ReviewFreshness      float64 `json:"review_freshness"`
	HealthDistribution   float64 `json:"health_distribution"`
}

// PreparednessResult is the portfolio-level score with its trend
// relative to the previous stored snapshot.
type PreparednessResult struct {
	Score   int                 `json:"score"`
	Trend   Trend               `json:"trend"`
	Factors PreparednessFactors `json:"factors"`
}

type GapPriority string

const (
	GapPriorityHigh   GapPriority = "high"
	GapPriorityMedium GapPriority = "medium"
	GapPriorityLow    GapPriority = "low"
)

// GapSuggestion is a companion document the user likely needs but has
// not uploaded. Key is the stable identity used for dismissal.
type GapSuggestion struct {
	Key            string      `json:"key"`
	Label          string      `json:"label"`
	Description    string      `json:"description"`
	SourceCategory Category    `json:"source_category"`
	Priority       GapPriority `json:"priority"`
}

type InsightType string

const (
	InsightExpirationWarning  InsightType = "expiration_warning"
	InsightRenewalApproaching InsightType = "renewal_approaching"
	InsightCancellationWindow InsightType = "cancellation_window"
	InsightReviewDue          InsightType = "review_due"
	InsightMetadataIncomplete InsightType = "metadata_incomplete"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Insight is a typed observation about a single document.
type Insight struct {
	Type     InsightType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

type FeedItemKind string

const (
	FeedItemDocumentAlert FeedItemKind = "document_alert"
	FeedItemGapSuggestion FeedItemKind = "gap_suggestion"
	FeedItemInsight       FeedItemKind = "insight"
)

// FeedItem is one entry in the "Today" feed. Exactly one of DocumentID
// and GapKey is set, depending on Kind, so the caller can deep-link.
type FeedItem struct {
	Kind       FeedItemKind `json:"kind"`
	Severity   Severity     `json:"severity"`
	Title      string       `json:"title"`
	Message    string       `json:"message,omitempty"`
	DocumentID string       `json:"document_id,omitempty"`
	GapKey     string       `json:"gap_key,omitempty"`
}

// WeeklyAudit is the structured weekly report for one user's portfolio.
type WeeklyAudit struct {
	NearingExpiration  []Document          `json:"nearing_expiration"`
	MissingExpirations []Document          `json:"missing_expirations"`
	HealthSummary      map[HealthState]int `json:"health_summary"`
	OpenGaps           []GapSuggestion     `json:"open_gaps,omitempty"`
	Preparedness       PreparednessResult  `json:"preparedness"`
	GeneratedAt        time.Time           `json:"generated_at"`
}
