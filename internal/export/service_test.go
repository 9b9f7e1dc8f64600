package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
)

func result(id, date string) entity.VerificationResult {
	return entity.VerificationResult{
		ID: id, DocumentName: id + ".pdf", UploadDate: date,
		Status: constants.StatusVerified, IsLegal: true, OwnershipType: constants.OwnershipPrivate,
		DocumentType: "Patta", SurveyNumber: "SF No. 1/1", District: "Salem", Taluk: "Attur", Village: "Kolathur",
		Area: "1 acre", Owner: "Lakshmi", Classification: "Wet Land", Discrepancies: []string{}, Confidence: 100,
		VerificationDetails: entity.VerificationDetails{RegistrationStatus: "Registered", PortalMatch: true, OwnershipVerified: true, BoundariesConfirmed: true, TaxStatus: "Current"},
	}
}

func TestExportHistoryXLSX(t *testing.T) {
	ctx := context.Background()
	vh := repository.NewMemoryVerificationHistory()
	require.NoError(t, vh.Append(ctx, result("old", "2024-01-05")))
	require.NoError(t, vh.Append(ctx, result("new", "2024-02-10")))

	svc := NewService(vh, repository.NewMemoryContractHistory(), nil)

	from := time.Date(2024, 2, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	data, err := svc.ExportHistoryXLSX(ctx, Window{From: &from, To: &to})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetVerifications)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Verification Date", rows[0][0])
	assert.Equal(t, "2024-02-10", rows[1][0])
	assert.Equal(t, "Salem, Attur, Kolathur", rows[1][8])

	contracts, err := f.GetRows(SheetContracts)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
}

func TestExportHistoryXLSX_NoWindow(t *testing.T) {
	ctx := context.Background()
	vh := repository.NewMemoryVerificationHistory()
	require.NoError(t, vh.Append(ctx, result("a", "2024-01-05")))
	require.NoError(t, vh.Append(ctx, result("b", "2023-12-01")))

	data, err := NewService(vh, repository.NewMemoryContractHistory(), nil).ExportHistoryXLSX(ctx, Window{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetVerifications)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "b.pdf", rows[1][1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
