package engagement

import (
	"sort"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// MaxFeedItems is the hard cap on the "Today" feed.
const MaxFeedItems = 12

var severityRank = map[domain.Severity]int{
	domain.SeverityCritical: 0,
	domain.SeverityWarning:  1,
	domain.SeverityInfo:     2,
}

// GenerateTodayFeed merges at-risk documents, their actionable
// insights and open gap suggestions into one ranked feed. Items are
// sorted by severity (critical, warning, info) with source order
// preserved within a severity, then truncated from the tail to
// MaxFeedItems so the highest-severity items always survive.
func GenerateTodayFeed(
	docs []domain.Document,
	healthMap map[string]domain.HealthResult,
	gaps []domain.GapSuggestion,
	now time.Time,
) []domain.FeedItem {
	var items []domain.FeedItem

	for _, doc := range docs {
		result, ok := healthMap[doc.ID]
		if !ok {
			result = ComputeDocumentHealth(doc, now)
		}

		var severity domain.Severity
		switch result.State {
		case domain.HealthCritical:
			severity = domain.SeverityCritical
		case domain.HealthRisk:
			severity = domain.SeverityWarning
		default:
			continue
		}

		message := ""
		if len(result.Reasons) > 0 {
			message = result.Reasons[0]
		}
		items = append(items, domain.FeedItem{
			Kind:       domain.FeedItemDocumentAlert,
			Severity:   severity,
			Title:      "Needs attention: " + doc.Filename,
			Message:    message,
			DocumentID: doc.ID,
		})
	}

	for _, doc := range docs {
		for _, insight := range GenerateDocumentInsights(doc, now) {
			if insight.Severity == domain.SeverityInfo {
				continue
			}
			items = append(items, domain.FeedItem{
				Kind:       domain.FeedItemInsight,
				Severity:   insight.Severity,
				Title:      doc.Filename,
				Message:    insight.Message,
				DocumentID: doc.ID,
			})
		}
	}

	for _, gap := range gaps {
		severity := domain.SeverityInfo
		if gap.Priority == domain.GapPriorityHigh {
			severity = domain.SeverityWarning
		}
		items = append(items, domain.FeedItem{
			Kind:     domain.FeedItemGapSuggestion,
			Severity: severity,
			Title:    "Suggested: " + gap.Label,
			Message:  gap.Description,
			GapKey:   gap.Key,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return severityRank[items[i].Severity] < severityRank[items[j].Severity]
	})

	if len(items) > MaxFeedItems {
		items = items[:MaxFeedItems]
	}
	return items
}
