package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusActive     DocumentStatus = "active"
	StatusFailed     DocumentStatus = "failed"
)

// Category is the closed set of semantic document categories. Unknown
// values coming from the outside world must be normalized through
// ParseCategory before they reach the engagement engine.
type Category string

const (
	CategoryInsurance  Category = "insurance"
	CategoryWarranty   Category = "warranty"
	CategoryLease      Category = "lease"
	CategoryEmployment Category = "employment"
	CategoryContract   Category = "contract"
	CategoryOther      Category = "other"
)

var knownCategories = map[Category]struct{}{
	CategoryInsurance:  {},
	CategoryWarranty:   {},
	CategoryLease:      {},
	CategoryEmployment: {},
	CategoryContract:   {},
	CategoryOther:      {},
}

// ParseCategory maps an arbitrary string onto the closed category set,
// falling back to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryOther
}

// Document is the stored snapshot of one user document. The Health*
// and InsightsCache fields are caches written back by the recompute
// worker; the engagement engine itself never persists them.
type Document struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Filename    string   `json:"filename"`
	MimeType    string   `json:"mime_type"`
	StoragePath string   `json:"storage_path"`
	Category    Category `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	IssuerName string `json:"issuer_name,omitempty"`
	OwnerName  string `json:"owner_name,omitempty"`

	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	EffectiveDate  *time.Time `json:"effective_date,omitempty"`

	UploadedAt        time.Time  `json:"uploaded_at"`
	LastReviewedAt    *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCadenceDays *int       `json:"review_cadence_days,omitempty"`

	Status    DocumentStatus `json:"status"`
	Processed bool           `json:"processed"`
	Error     string         `json:"error,omitempty"`

	HealthState      HealthState `json:"health_state,omitempty"`
	HealthScore      int         `json:"health_score"`
	HealthComputedAt *time.Time  `json:"health_computed_at,omitempty"`
	InsightsCache    []Insight   `json:"insights_cache,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LastTouchedAt is the reference instant for staleness checks: the last
// review when one exists, otherwise the upload.
func (d Document) LastTouchedAt() time.Time {
	if d.LastReviewedAt != nil {
		return *d.LastReviewedAt
	}
	return d.UploadedAt
}

func (d Document) HasTags() bool {
	return len(d.Tags) > 0
}

func (d Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
