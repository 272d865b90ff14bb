// Package xlsx renders a weekly audit as a spreadsheet for download.
package xlsx

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

const dateLayout = "2006-01-02"

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds a workbook with one sheet per audit section.
func (e *Exporter) Export(audit domain.WeeklyAudit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, audit); err != nil {
		return nil, err
	}
	if err := writeDocumentSheet(f, "Nearing Expiration", audit.NearingExpiration, audit.GeneratedAt); err != nil {
		return nil, err
	}
	if err := writeDocumentSheet(f, "Missing Expirations", audit.MissingExpirations, audit.GeneratedAt); err != nil {
		return nil, err
	}
	if err := writeGapSheet(f, audit.OpenGaps); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, audit domain.WeeklyAudit) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]any{
		{"Generated At", audit.GeneratedAt.Format(time.RFC3339)},
		{"Preparedness Score", audit.Preparedness.Score},
		{"Trend", string(audit.Preparedness.Trend)},
		{},
		{"Health State", "Documents"},
		{"healthy", audit.HealthSummary[domain.HealthHealthy]},
		{"watch", audit.HealthSummary[domain.HealthWatch]},
		{"risk", audit.HealthSummary[domain.HealthRisk]},
		{"critical", audit.HealthSummary[domain.HealthCritical]},
	}
	return writeRows(f, sheet, rows)
}

func writeDocumentSheet(f *excelize.File, sheet string, docs []domain.Document, now time.Time) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Filename", "Category", "Expiration", "Days Left", "Health"}}
	for _, doc := range docs {
		expiration := ""
		daysLeft := any("")
		if doc.ExpirationDate != nil {
			expiration = doc.ExpirationDate.Format(dateLayout)
			daysLeft = int(doc.ExpirationDate.Sub(now).Hours() / 24)
		}
		rows = append(rows, []any{
			doc.Filename,
			string(doc.Category),
			expiration,
			daysLeft,
			string(doc.HealthState),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeGapSheet(f *excelize.File, gaps []domain.GapSuggestion) error {
	const sheet = "Open Gaps"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Suggestion", "Priority", "Based On", "Why"}}
	for _, gap := range gaps {
		rows = append(rows, []any{
			gap.Label,
			string(gap.Priority),
			string(gap.SourceCategory),
			gap.Description,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
