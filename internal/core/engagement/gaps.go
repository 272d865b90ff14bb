package engagement

import (
	"sort"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

// gapRule suggests companion documents for users who already hold
// documents of a category. When tag is non-empty, at least one document
// in that category must carry the tag for the rule to trigger.
type gapRule struct {
	category domain.Category
	tag      string
	suggest  []domain.GapSuggestion
}

// The rule table is ordered: ties within a priority preserve this order.
var gapRules = []gapRule{
	{
		category: domain.CategoryInsurance,
		tag:      "auto",
		suggest: []domain.GapSuggestion{
			{
				Key:            "vehicle_registration",
				Label:          "Vehicle registration",
				Description:    "You have auto insurance but no vehicle registration on file.",
				SourceCategory: domain.CategoryInsurance,
				Priority:       domain.GapPriorityHigh,
			},
			{
				Key:            "vehicle_title",
				Label:          "Vehicle title",
				Description:    "Keep the vehicle title alongside your auto insurance policy.",
				SourceCategory: domain.CategoryInsurance,
				Priority:       domain.GapPriorityMedium,
			},
			{
				Key:            "maintenance_records",
				Label:          "Maintenance records",
				Description:    "Service history supports warranty and resale claims.",
				SourceCategory: domain.CategoryInsurance,
				Priority:       domain.GapPriorityLow,
			},
		},
	},
	{
		category: domain.CategoryInsurance,
		tag:      "home",
		suggest: []domain.GapSuggestion{
			{
				Key:            "home_inventory",
				Label:          "Home inventory",
				Description:    "An itemized inventory speeds up homeowner insurance claims.",
				SourceCategory: domain.CategoryInsurance,
				Priority:       domain.GapPriorityMedium,
			},
		},
	},
	{
		category: domain.CategoryLease,
		suggest: []domain.GapSuggestion{
			{
				Key:            "renter_insurance",
				Label:          "Renter's insurance",
				Description:    "You have a lease on file but no renter's insurance policy.",
				SourceCategory: domain.CategoryLease,
				Priority:       domain.GapPriorityHigh,
			},
		},
	},
	{
		category: domain.CategoryEmployment,
		suggest: []domain.GapSuggestion{
			{
				Key:            "tax_w2",
				Label:          "W-2 tax form",
				Description:    "Keep your most recent W-2 with your employment documents.",
				SourceCategory: domain.CategoryEmployment,
				Priority:       domain.GapPriorityMedium,
			},
			{
				Key:            "offer_letter",
				Label:          "Offer letter",
				Description:    "Your signed offer letter documents agreed compensation.",
				SourceCategory: domain.CategoryEmployment,
				Priority:       domain.GapPriorityLow,
			},
		},
	},
	{
		category: domain.CategoryWarranty,
		suggest: []domain.GapSuggestion{
			{
				Key:            "purchase_receipt",
				Label:          "Purchase receipt",
				Description:    "Warranty claims usually require the original purchase receipt.",
				SourceCategory: domain.CategoryWarranty,
				Priority:       domain.GapPriorityMedium,
			},
		},
	},
}

var gapPriorityRank = map[domain.GapPriority]int{
	domain.GapPriorityHigh:   0,
	domain.GapPriorityMedium: 1,
	domain.GapPriorityLow:    2,
}

// DetectGaps cross-references a user's documents against the rule
// table and returns the surviving suggestions sorted by priority
// (high, medium, low), preserving rule-table order within a priority.
// Suggestions whose key appears in dismissed are suppressed.
func DetectGaps(docs []domain.Document, dismissed map[string]struct{}) []domain.GapSuggestion {
	byCategory := make(map[domain.Category][]domain.Document, len(docs))
	for _, doc := range docs {
		byCategory[doc.Category] = append(byCategory[doc.Category], doc)
	}

	var out []domain.GapSuggestion
	seen := make(map[string]struct{})
	for _, rule := range gapRules {
		catDocs := byCategory[rule.category]
		if len(catDocs) == 0 {
			continue
		}
		if rule.tag != "" && !anyHasTag(catDocs, rule.tag) {
			continue
		}
		for _, suggestion := range rule.suggest {
			if _, ok := dismissed[suggestion.Key]; ok {
				continue
			}
			if _, ok := seen[suggestion.Key]; ok {
				continue
			}
			seen[suggestion.Key] = struct{}{}
			out = append(out, suggestion)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return gapPriorityRank[out[i].Priority] < gapPriorityRank[out[j].Priority]
	})
	return out
}

// KnownGapKey reports whether a key exists in the rule table, so
// dismissal requests can be validated before they are persisted.
func KnownGapKey(key string) bool {
	for _, rule := range gapRules {
		for _, suggestion := range rule.suggest {
			if suggestion.Key == key {
				return true
			}
		}
	}
	return false
}

func anyHasTag(docs []domain.Document, tag string) bool {
	for _, doc := range docs {
		if doc.HasTag(tag) {
			return true
		}
	}
	return false
}
