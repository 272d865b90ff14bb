package engagement

import (
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// Category-specific review cadence defaults, in days. Categories not
// listed here fall back to an annual review.
var defaultCadenceDays = map[domain.Category]int{
	domain.CategoryInsurance: 365,
	domain.CategoryLease:     180,
	domain.CategoryContract:  180,
}

const fallbackCadenceDays = 365

// SuggestReviewCadence returns the default review interval for a
// category.
func SuggestReviewCadence(category domain.Category) int {
	if days, ok := defaultCadenceDays[category]; ok {
		return days
	}
	return fallbackCadenceDays
}

// NextReviewDate returns when the document is next due for review, or
// nil when the document carries no review cadence.
func NextReviewDate(doc domain.Document) *time.Time {
	if doc.ReviewCadenceDays == nil {
		return nil
	}
	next := doc.LastTouchedAt().AddDate(0, 0, *doc.ReviewCadenceDays)
	return &next
}
