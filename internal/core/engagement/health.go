package engagement

import (
	"fmt"
	"strings"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// State thresholds. Non-overlapping: a score lands in exactly one state.
const (
	healthyMinScore = 75
	watchMinScore   = 50
	riskMinScore    = 25
)

// Review cadence and staleness cutoffs shared by the health scorer and
// the insight generator.
const (
	reviewDueSoonDays    = 14
	reviewOverdueHard    = 60
	staleAfterDays       = 180
	staleAfterYearDays   = 365
	metadataFieldPenalty = 5
	metadataBulkPenalty  = 15
)

// ComputeDocumentHealth scores one document at the given instant.
// Scoring starts at 100 and applies independent additive penalties;
// the result is clamped to [0,100] only at the end, and each applied
// penalty contributes one entry to Reasons.
func ComputeDocumentHealth(doc domain.Document, now time.Time) domain.HealthResult {
	penalty := 0
	var reasons []string

	if doc.ExpirationDate != nil {
		days := daysUntil(now, *doc.ExpirationDate)
		switch {
		case days < 0:
			penalty += 50
			reasons = append(reasons, fmt.Sprintf("Expired %d days ago", -days))
		case days <= 7:
			penalty += 40
			reasons = append(reasons, fmt.Sprintf("Expires in %d days", days))
		case days <= 30:
			penalty += 25
			reasons = append(reasons, fmt.Sprintf("Expires in %d days", days))
		case days <= 90:
			penalty += 10
			reasons = append(reasons, fmt.Sprintf("Expires in %d days", days))
		}
	}

	if doc.ReviewCadenceDays != nil {
		cadence := *doc.ReviewCadenceDays
		since := daysSince(now, doc.LastTouchedAt())
		overdue := since - cadence
		switch {
		case overdue > reviewOverdueHard:
			penalty += 30
			reasons = append(reasons, fmt.Sprintf("Review overdue by %d days", overdue))
		case overdue > 0:
			penalty += 15
			reasons = append(reasons, fmt.Sprintf("Review overdue by %d days", overdue))
		case cadence-since <= reviewDueSoonDays:
			penalty += 5
			reasons = append(reasons, fmt.Sprintf("Review due in %d days", cadence-since))
		}
	} else if doc.ExpirationDate == nil {
		// No cadence and no expiration: fall back to a raw staleness check
		// against the last review or upload.
		since := daysSince(now, doc.LastTouchedAt())
		switch {
		case since > staleAfterYearDays:
			penalty += 20
			reasons = append(reasons, "Not reviewed in over a year")
		case since > staleAfterDays:
			penalty += 10
			reasons = append(reasons, "Not reviewed in over six months")
		}
	}

	missing := missingMetadataFields(doc)
	if len(missing) >= 3 {
		penalty += metadataBulkPenalty
		reasons = append(reasons, "Missing most key details: "+strings.Join(missing, ", "))
	} else {
		for _, field := range missing {
			penalty += metadataFieldPenalty
			reasons = append(reasons, "Missing "+field)
		}
	}

	score := clampScore(100 - penalty)
	return domain.HealthResult{
		Score:   score,
		State:   StateForScore(score),
		Reasons: reasons,
	}
}

// ComputeAllDocumentHealth maps ComputeDocumentHealth over a document
// set, keyed by document id.
func ComputeAllDocumentHealth(docs []domain.Document, now time.Time) map[string]domain.HealthResult {
	out := make(map[string]domain.HealthResult, len(docs))
	for _, doc := range docs {
		out[doc.ID] = ComputeDocumentHealth(doc, now)
	}
	return out
}

// StateForScore classifies a clamped score through the fixed thresholds.
func StateForScore(score int) domain.HealthState {
	switch {
	case score >= healthyMinScore:
		return domain.HealthHealthy
	case score >= watchMinScore:
		return domain.HealthWatch
	case score >= riskMinScore:
		return domain.HealthRisk
	default:
		return domain.HealthCritical
	}
}

// missingMetadataFields reports which of the four scored metadata
// fields are absent. A document with either an expiration date or a
// review cadence is considered to have its "dates" covered.
func missingMetadataFields(doc domain.Document) []string {
	var missing []string
	if !doc.HasTags() {
		missing = append(missing, "tags")
	}
	if doc.ExpirationDate == nil && doc.ReviewCadenceDays == nil {
		missing = append(missing, "expiration or review cadence")
	}
	if doc.IssuerName == "" {
		missing = append(missing, "issuer")
	}
	if doc.OwnerName == "" {
		missing = append(missing, "owner")
	}
	return missing
}
