package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/insights"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

// Sheet names in the history workbook.
const (
	SheetVerifications = "Verifications"
	SheetContracts     = "Contracts"
)

// Service is a tiny façade over the history stores that produces XLSX bytes.
type Service struct {
	verifications repository.VerificationHistory
	contracts     repository.ContractHistory
	logger        *slog.Logger
}

func NewService(v repository.VerificationHistory, c repository.ContractHistory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{verifications: v, contracts: c, logger: logger}
}

// Window limits which verifications are exported.
// If only From is provided -> From..today (inclusive).
// If only To is provided   -> beginning..To (inclusive).
// If neither is provided   -> everything.
// Limit caps the number of history records read per sheet; 0 reads all.
type Window struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ExportHistoryXLSX returns a workbook with one sheet of verifications and one
// of contract analyses, newest first.
func (s *Service) ExportHistoryXLSX(ctx context.Context, w Window) ([]byte, error) {
	start := time.Now()
	fromDate, toDate := normalize(w.From, w.To)

	results, err := s.verifications.ListRecent(ctx, w.Limit)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	results = filterByDate(results, fromDate, toDate)

	contracts, err := s.contracts.ListRecent(ctx, w.Limit)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetVerifications); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetContracts); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(SheetVerifications)
	f.SetActiveSheet(activeIndex)

	writeVerifications(f, results)
	writeContracts(f, contracts)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"verifications", len(results),
		"contracts", len(contracts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeVerifications(f *excelize.File, results []entity.VerificationResult) {
	const sheet = SheetVerifications
	headers := []string{
		"Verification Date",
		"Document Name",
		"Document Type",
		"Status",
		"Confidence",
		"Ownership Type",
		"Owner",
		"Survey Number",
		"Location",
		"Discrepancies",
		"Report ID",
	}
	writeHeaders(f, sheet, headers)

	for i, r := range results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.UploadDate)
		write(2, r.DocumentName)
		write(3, r.DocumentType)
		write(4, r.Status)
		write(5, r.Confidence)
		write(6, r.OwnershipType)
		write(7, r.Owner)
		write(8, r.SurveyNumber)
		write(9, strings.Join([]string{r.District, r.Taluk, r.Village}, ", "))
		write(10, truncate(strings.Join(r.Discrepancies, "; "), 140))
		write(11, r.ID)
	}

	_ = f.SetColWidth(sheet, "A", "A", 16) // date
	_ = f.SetColWidth(sheet, "B", "B", 32) // name
	_ = f.SetColWidth(sheet, "C", "F", 16)
	_ = f.SetColWidth(sheet, "G", "H", 22)
	_ = f.SetColWidth(sheet, "I", "I", 40) // location
	_ = f.SetColWidth(sheet, "J", "J", 60) // discrepancies
	_ = f.SetColWidth(sheet, "K", "K", 38) // id
}

func writeContracts(f *excelize.File, contracts []entity.ContractAnalysis) {
	const sheet = SheetContracts
	headers := []string{
		"Contract Name",
		"Risk Level",
		"Compliance",
		"Average Confidence",
		"Summary",
		"Report ID",
	}
	writeHeaders(f, sheet, headers)

	for i, c := range contracts {
		row := i + 2
		ov := insights.ContractOverview(c.Sections)
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, c.Name)
		write(2, ov.RiskLevel)
		write(3, ov.ComplianceStatus)
		write(4, averageConfidence(c.Sections))
		write(5, truncate(c.Summary, 140))
		write(6, c.ID)
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 60)
	_ = f.SetColWidth(sheet, "F", "F", 38)
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

// normalize truncates the window to UTC dates.
func normalize(from, to *time.Time) (*time.Time, *time.Time) {
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	return fromDate, toDate
}

// filterByDate keeps results whose upload date falls in [from, to]. Results
// with an unparseable date are kept only when no window is set.
func filterByDate(in []entity.VerificationResult, from, to *time.Time) []entity.VerificationResult {
	if from == nil && to == nil {
		return in
	}
	out := make([]entity.VerificationResult, 0, len(in))
	for _, r := range in {
		d, err := time.Parse(verify.DateLayout, r.UploadDate)
		if err != nil {
			continue
		}
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func averageConfidence(sections []entity.SectionAnalysis) int {
	if len(sections) == 0 {
		return 0
	}
	total := 0
	for _, s := range sections {
		total += s.Confidence
	}
	return total / len(sections)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
