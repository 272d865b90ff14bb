package engagement

import (
	"fmt"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// GenerateDocumentInsights derives typed observations for one
// document. A single document can legitimately produce several
// insights at once (e.g. expiring soon and missing metadata).
func GenerateDocumentInsights(doc domain.Document, now time.Time) []domain.Insight {
	var out []domain.Insight

	if doc.ExpirationDate != nil {
		days := daysUntil(now, *doc.ExpirationDate)
		switch {
		case days < 0:
			out = append(out, domain.Insight{
				Type:     domain.InsightExpirationWarning,
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("This document expired %d days ago.", -days),
			})
		case days <= 14:
			out = append(out, domain.Insight{
				Type:     domain.InsightExpirationWarning,
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("This document expires in %d days.", days),
			})
		case days <= 30:
			out = append(out, domain.Insight{
				Type:     domain.InsightRenewalApproaching,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Renewal approaching: expires in %d days.", days),
			})
			if doc.Category == domain.CategoryLease {
				// Leases typically require advance notice to cancel or not renew.
				out = append(out, domain.Insight{
					Type:     domain.InsightCancellationWindow,
					Severity: domain.SeverityWarning,
					Message:  "Your lease renews soon; check the notice period if you plan to cancel.",
				})
			}
		}
	}

	if doc.ReviewCadenceDays != nil {
		overdue := daysSince(now, doc.LastTouchedAt()) - *doc.ReviewCadenceDays
		if overdue > 0 {
			severity := domain.SeverityWarning
			if overdue > reviewOverdueHard {
				severity = domain.SeverityCritical
			}
			out = append(out, domain.Insight{
				Type:     domain.InsightReviewDue,
				Severity: severity,
				Message:  fmt.Sprintf("Review overdue by %d days.", overdue),
			})
		}
	}

	if missing := missingMetadataFields(doc); len(missing) > 0 {
		out = append(out, domain.Insight{
			Type:     domain.InsightMetadataIncomplete,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("%d metadata fields are missing; filling them improves tracking.", len(missing)),
		})
	}

	return out
}
