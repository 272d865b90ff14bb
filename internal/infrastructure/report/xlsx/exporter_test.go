package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

func sampleAudit() domain.WeeklyAudit {
	now := time.Date(2026, 8, 17, 7, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 0, 10)
	return domain.WeeklyAudit{
		NearingExpiration: []domain.Document{{
			ID:             "doc-1",
			Filename:       "policy.pdf",
			Category:       domain.CategoryInsurance,
			ExpirationDate: &expires,
			HealthState:    domain.HealthWatch,
		}},
		MissingExpirations: []domain.Document{{
			ID:       "doc-2",
			Filename: "lease.pdf",
			Category: domain.CategoryLease,
		}},
		HealthSummary: map[domain.HealthState]int{
			domain.HealthHealthy:  3,
			domain.HealthWatch:    1,
			domain.HealthRisk:     0,
			domain.HealthCritical: 0,
		},
		OpenGaps: []domain.GapSuggestion{{
			Key:            "renter_insurance",
			Label:          "Renter insurance policy",
			Description:    "A lease is on file but no renter insurance policy.",
			SourceCategory: domain.CategoryLease,
			Priority:       domain.GapPriorityHigh,
		}},
		Preparedness: domain.PreparednessResult{Score: 72, Trend: domain.TrendUp},
		GeneratedAt:  now,
	}
}

func TestExportProducesReadableWorkbook(t *testing.T) {
	exporter := NewExporter()

	raw, err := exporter.Export(sampleAudit())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"Summary": false, "Nearing Expiration": false, "Missing Expirations": false, "Open Gaps": false}
	for _, name := range sheets {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing sheet %q, got %v", name, sheets)
		}
	}

	score, err := f.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatalf("read score cell: %v", err)
	}
	if score != "72" {
		t.Fatalf("expected score 72, got %q", score)
	}

	filename, err := f.GetCellValue("Nearing Expiration", "A2")
	if err != nil {
		t.Fatalf("read filename cell: %v", err)
	}
	if filename != "policy.pdf" {
		t.Fatalf("expected policy.pdf, got %q", filename)
	}
}

func TestExportEmptyAudit(t *testing.T) {
	exporter := NewExporter()

	raw, err := exporter.Export(domain.WeeklyAudit{
		HealthSummary: map[domain.HealthState]int{},
		GeneratedAt:   time.Date(2026, 8, 17, 7, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected workbook bytes for empty audit")
	}
}
