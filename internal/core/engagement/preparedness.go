package engagement

import (
	"math"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// A document counts as "fresh" when it was reviewed (or uploaded, if
// never reviewed) within this window.
const freshnessWindowDays = 180

// Trend changes only outside a ±2 band so that recomputing an
// unchanged portfolio never flaps between up/down on rounding noise.
const trendBand = 2

// ComputePreparedness aggregates per-document health and portfolio
// signals into a single 0-100 score with four 25-point factors. An
// empty portfolio scores 0 with a stable trend. Documents absent from
// healthMap are scored on the fly, so the caller may pass a partial or
// nil map.
func ComputePreparedness(
	docs []domain.Document,
	healthMap map[string]domain.HealthResult,
	previousScore *int,
	now time.Time,
) domain.PreparednessResult {
	if len(docs) == 0 {
		return domain.PreparednessResult{Score: 0, Trend: domain.TrendStable}
	}

	var withExpiration, withTags, categorized, withIssuer, fresh, healthy, watch float64
	for _, doc := range docs {
		if doc.ExpirationDate != nil {
			withExpiration++
		}
		if doc.HasTags() {
			withTags++
		}
		if doc.Category != domain.CategoryOther {
			categorized++
		}
		if doc.IssuerName != "" {
			withIssuer++
		}
		if daysSince(now, doc.LastTouchedAt()) <= freshnessWindowDays {
			fresh++
		}

		result, ok := healthMap[doc.ID]
		if !ok {
			result = ComputeDocumentHealth(doc, now)
		}
		switch result.State {
		case domain.HealthHealthy:
			healthy++
		case domain.HealthWatch:
			watch++
		}
	}

	n := float64(len(docs))
	factors := domain.PreparednessFactors{
		MetadataCompleteness: 25 * (0.35*withExpiration/n + 0.25*withTags/n + 0.20*categorized/n + 0.20*withIssuer/n),
		ExpirationCoverage:   25 * withExpiration / n,
		ReviewFreshness:      25 * fresh / n,
		HealthDistribution:   25*healthy/n + 15*watch/n,
	}

	total := factors.MetadataCompleteness +
		factors.ExpirationCoverage +
		factors.ReviewFreshness +
		factors.HealthDistribution
	score := clampScore(int(math.Round(total)))

	return domain.PreparednessResult{
		Score:   score,
		Trend:   trendAgainst(score, previousScore),
		Factors: factors,
	}
}

func trendAgainst(score int, previousScore *int) domain.Trend {
	if previousScore == nil {
		return domain.TrendStable
	}
	diff := score - *previousScore
	switch {
	case diff > trendBand:
		return domain.TrendUp
	case diff < -trendBand:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}
