package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
)

var fixedNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

func result() entity.VerificationResult {
	return entity.VerificationResult{
		ID:             "r-1",
		DocumentName:   "patta.pdf",
		UploadDate:     "2024-03-09",
		Status:         constants.StatusIssuesFound,
		IsLegal:        false,
		OwnershipType:  constants.OwnershipPrivate,
		DocumentType:   "Patta",
		SurveyNumber:   "SF No. 312/4",
		District:       "Chennai",
		Taluk:          "Tambaram",
		Village:        "Perungalathur",
		Area:           "2.5 acres",
		Owner:          "RamKumar",
		Classification: "Dry Land",
		Discrepancies:  []string{"Tax payments are not current"},
		Confidence:     85,
		VerificationDetails: entity.VerificationDetails{
			RegistrationStatus:  constants.RegistrationRegistered,
			PortalMatch:         true,
			OwnershipVerified:   true,
			BoundariesConfirmed: true,
			TaxStatus:           "Overdue",
		},
	}
}

func TestChecks(t *testing.T) {
	got := Checks(result().VerificationDetails)
	require.Len(t, got, 5)
	assert.Equal(t, Check{Name: "Registration Status", Glyph: GlyphSuccess, Result: "Registered"}, got[0])
	assert.Equal(t, Check{Name: "Portal Match", Glyph: GlyphSuccess, Result: "Verified"}, got[1])
	assert.Equal(t, Check{Name: "Tax Status", Glyph: GlyphWarning, Result: "Overdue"}, got[4])

	failed := Checks(entity.VerificationDetails{})
	assert.Equal(t, Check{Name: "Registration Status", Glyph: GlyphWarning, Result: constants.NotSpecified}, failed[0])
	assert.Equal(t, GlyphError, failed[2].Glyph)
}

func TestTextRenderer_Verification(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, VerificationDocument(result(), fixedNow)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Land Verification Report\n"))
	assert.Contains(t, out, "[ ISSUES ]")
	assert.Contains(t, out, "Confidence Score:")
	assert.Contains(t, out, "85%")
	assert.Contains(t, out, "Discrepancies Found")
	assert.Contains(t, out, "  • Tax payments are not current")
	assert.Contains(t, out, "Generated on: 9 March 2024, 03:30 PM")
}

func TestTextRenderer_MissingFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, VerificationDocument(entity.VerificationResult{IsLegal: true}, fixedNow)))
	out := buf.String()

	assert.Contains(t, out, "[ VERIFIED ]")
	assert.Contains(t, out, constants.NotSpecified)
	assert.NotContains(t, out, "Discrepancies Found")
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXRenderer{}.Render(&buf, VerificationDocument(result(), fixedNow)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(reportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, verificationTitle, title)

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "Owner" {
			found = true
			assert.Equal(t, "RamKumar", r[1])
		}
	}
	assert.True(t, found)
}

func TestAssembler_PersistsThenRenders(t *testing.T) {
	vh := repository.NewMemoryVerificationHistory()
	a := NewAssembler(vh, repository.NewMemoryContractHistory(), nil, WithClock(func() time.Time { return fixedNow }))

	rep, err := a.AssembleVerification(context.Background(), result())
	require.NoError(t, err)
	assert.Equal(t, "land_verification_report_r-1_2024-03-09.txt", rep.FileName)
	assert.Contains(t, string(rep.Body), "Property Details")

	stored, err := vh.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, result(), stored)
}

func TestAssembler_RejectsInvalidResult(t *testing.T) {
	a := NewAssembler(repository.NewMemoryVerificationHistory(), repository.NewMemoryContractHistory(), nil)
	bad := result()
	bad.IsLegal = true

	_, err := a.AssembleVerification(context.Background(), bad)
	assert.Error(t, err)
}

func TestAssembler_Contract(t *testing.T) {
	c := entity.ContractAnalysis{ID: "c-1", Name: "lease.pdf", Summary: "A lease.", KeyPoints: []string{"point"}}
	for _, cat := range constants.Categories() {
		c.Sections = append(c.Sections, entity.SectionAnalysis{
			Title: cat.Title(), Key: string(cat), Content: "fine", Confidence: 90, HasContent: true,
			Alerts: []entity.Alert{{Message: "No critical issues found.", Level: constants.AlertInfo, Category: string(cat)}},
		})
	}

	a := NewAssembler(repository.NewMemoryVerificationHistory(), repository.NewMemoryContractHistory(), nil,
		WithClock(func() time.Time { return fixedNow }), WithRenderer(RendererFor("XLSX")))
	rep, err := a.AssembleContract(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "contract_analysis_report_c-1_2024-03-09.xlsx", rep.FileName)
	assert.NotEmpty(t, rep.Body)
}
