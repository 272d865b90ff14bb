package engagement

import (
	"testing"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

func TestSuggestReviewCadence(t *testing.T) {
	cases := []struct {
		category domain.Category
		want     int
	}{
		{domain.CategoryInsurance, 365},
		{domain.CategoryLease, 180},
		{domain.CategoryContract, 180},
		{domain.CategoryWarranty, 365},
		{domain.CategoryEmployment, 365},
		{domain.CategoryOther, 365},
		{domain.Category("nonexistent_category"), 365},
	}
	for _, tc := range cases {
		if got := SuggestReviewCadence(tc.category); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.category, tc.want, got)
		}
	}
}

func TestNextReviewDateWithoutCadence(t *testing.T) {
	doc := domain.Document{UploadedAt: testNow}
	if next := NextReviewDate(doc); next != nil {
		t.Fatalf("expected nil without cadence, got %v", next)
	}
}

func TestNextReviewDateFromLastReview(t *testing.T) {
	reviewed := testNow.AddDate(0, 0, -10)
	doc := domain.Document{
		UploadedAt:        testNow.AddDate(0, 0, -100),
		LastReviewedAt:    timePtr(reviewed),
		ReviewCadenceDays: intPtr(30),
	}
	next := NextReviewDate(doc)
	if next == nil {
		t.Fatalf("expected next review date")
	}
	if want := reviewed.AddDate(0, 0, 30); !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestNextReviewDateFallsBackToUpload(t *testing.T) {
	uploaded := testNow.AddDate(0, 0, -40)
	doc := domain.Document{
		UploadedAt:        uploaded,
		ReviewCadenceDays: intPtr(90),
	}
	next := NextReviewDate(doc)
	if next == nil {
		t.Fatalf("expected next review date")
	}
	if want := uploaded.AddDate(0, 0, 90); !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}
