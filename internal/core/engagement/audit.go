package engagement

import (
	"sort"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// Documents expiring within this many days show up in the weekly
// audit's nearing-expiration section.
const expirationLookaheadDays = 30

// Categories where the absence of an expiration date is itself a risk
// signal.
var expirationSensitive = map[domain.Category]struct{}{
	domain.CategoryInsurance: {},
	domain.CategoryLease:     {},
}

// CompileWeeklyAudit assembles the structured weekly report. The
// health summary always covers every state and its counts sum to
// len(docs); documents missing from healthMap are scored on the fly.
func CompileWeeklyAudit(
	docs []domain.Document,
	healthMap map[string]domain.HealthResult,
	gaps []domain.GapSuggestion,
	preparedness domain.PreparednessResult,
	now time.Time,
) domain.WeeklyAudit {
	nearing := make([]domain.Document, 0)
	missing := make([]domain.Document, 0)
	summary := map[domain.HealthState]int{
		domain.HealthHealthy:  0,
		domain.HealthWatch:    0,
		domain.HealthRisk:     0,
		domain.HealthCritical: 0,
	}

	for _, doc := range docs {
		if doc.ExpirationDate != nil {
			days := daysUntil(now, *doc.ExpirationDate)
			if days >= 0 && days <= expirationLookaheadDays {
				nearing = append(nearing, doc)
			}
		} else if _, sensitive := expirationSensitive[doc.Category]; sensitive {
			missing = append(missing, doc)
		}

		result, ok := healthMap[doc.ID]
		if !ok {
			result = ComputeDocumentHealth(doc, now)
		}
		summary[result.State]++
	}

	sort.SliceStable(nearing, func(i, j int) bool {
		return nearing[i].ExpirationDate.Before(*nearing[j].ExpirationDate)
	})

	return domain.WeeklyAudit{
		NearingExpiration:  nearing,
		MissingExpirations: missing,
		HealthSummary:      summary,
		OpenGaps:           gaps,
		Preparedness:       preparedness,
		GeneratedAt:        now,
	}
}
