package repository

import (
	"context"
	"fmt"
	"testing"
	"unicode/utf8"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), common.DatabaseConfig{DSN: "sqlite://:memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func verification(id string, discrepancies ...string) entity.VerificationResult {
	status := constants.StatusVerified
	if len(discrepancies) > 0 {
		status = constants.StatusIssuesFound
	}
	return entity.VerificationResult{
		ID:             id,
		DocumentName:   "patta-" + id + ".pdf",
		UploadDate:     "2024-03-09",
		Status:         status,
		IsLegal:        len(discrepancies) == 0,
		OwnershipType:  constants.OwnershipPrivate,
		DocumentType:   "Patta",
		SurveyNumber:   "SF No. 312/4",
		District:       "Chennai",
		Taluk:          "Tambaram",
		Village:        "Perungalathur",
		Area:           "2.5 acres",
		Owner:          "RamKumar",
		Classification: "Dry Land",
		Discrepancies:  append([]string{}, discrepancies...),
		Confidence:     100 - 15*len(discrepancies),
		VerificationDetails: entity.VerificationDetails{
			RegistrationStatus:  constants.RegistrationRegistered,
			PortalMatch:         true,
			OwnershipVerified:   true,
			BoundariesConfirmed: true,
			TaxStatus:           constants.TaxStatusCurrent,
		},
	}
}

func contract(id string) entity.ContractAnalysis {
	c := entity.ContractAnalysis{
		ID:            id,
		Name:          "lease.docx",
		ExtractedText: "text",
		Summary:       "summary",
		KeyPoints:     []string{"a", "b", "c"},
	}
	for _, cat := range constants.Categories() {
		c.Sections = append(c.Sections, entity.SectionAnalysis{
			Title:      cat.Title(),
			Key:        string(cat),
			Content:    "content",
			Alerts:     []entity.Alert{{Message: "ok", Level: constants.AlertInfo, Category: string(cat)}},
			Confidence: 90,
			HasContent: true,
		})
	}
	return c
}

func verificationStores(t *testing.T) map[string]VerificationHistory {
	return map[string]VerificationHistory{
		"sqlite": NewVerificationHistory(openTestStore(t), nil),
		"memory": NewMemoryVerificationHistory(),
	}
}

func TestVerificationHistory_RoundTripNewestFirst(t *testing.T) {
	for name, h := range verificationStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := verification("a")
			second := verification("b", "Tax payments are not current")
			require.NoError(t, h.Append(ctx, first))
			require.NoError(t, h.Append(ctx, second))

			got, err := h.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, second, got)

			all, err := h.ListRecent(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "b", all[0].ID)
			assert.Equal(t, "a", all[1].ID)
			assert.NotNil(t, all[1].Discrepancies)

			one, err := h.ListRecent(ctx, 1)
			require.NoError(t, err)
			require.Len(t, one, 1)
			assert.Equal(t, "b", one[0].ID)
		})
	}
}

func TestVerificationHistory_NotFound(t *testing.T) {
	for name, h := range verificationStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := h.Get(context.Background(), "missing")
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestVerificationHistory_RejectsInconsistentResult(t *testing.T) {
	for name, h := range verificationStores(t) {
		t.Run(name, func(t *testing.T) {
			bad := verification("x", "Ownership information could not be verified")
			bad.IsLegal = true
			err := h.Append(context.Background(), bad)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)

			bad = verification("y")
			bad.Confidence = 140
			assert.ErrorIs(t, h.Append(context.Background(), bad), common.ErrValidation)

			bad = verification("z")
			bad.Owner = ""
			assert.ErrorIs(t, h.Append(context.Background(), bad), common.ErrValidation)
		})
	}
}

func TestContractHistory_RoundTrip(t *testing.T) {
	stores := map[string]ContractHistory{
		"sqlite": NewContractHistory(openTestStore(t), nil),
		"memory": NewMemoryContractHistory(),
	}
	for name, h := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 3; i++ {
				require.NoError(t, h.Append(ctx, contract(fmt.Sprintf("c%d", i))))
			}

			got, err := h.Get(ctx, "c1")
			require.NoError(t, err)
			assert.Equal(t, contract("c1"), got)

			recent, err := h.ListRecent(ctx, 2)
			require.NoError(t, err)
			require.Len(t, recent, 2)
			assert.Equal(t, "c2", recent[0].ID)

			short := contract("bad")
			short.Sections = short.Sections[:7]
			assert.ErrorIs(t, h.Append(ctx, short), common.ErrValidation)
		})
	}
}

func TestMemoryHistory_CopiesOnRead(t *testing.T) {
	h := NewMemoryVerificationHistory()
	ctx := context.Background()
	require.NoError(t, h.Append(ctx, verification("a", "x")))

	got, err := h.Get(ctx, "a")
	require.NoError(t, err)
	got.Discrepancies[0] = "mutated"

	again, err := h.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", again.Discrepancies[0])
}

func TestOpen_RejectsUnknownDSN(t *testing.T) {
	_, err := Open(context.Background(), common.DatabaseConfig{DSN: "mysql://x"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestVerificationHistory_ParsedRecordRoundTrip(t *testing.T) {
	rec := fields.Parse("Owner: Ravi, Survey No. 12/3, village \u017fembakkam, taluk Katpadi")
	require.True(t, utf8.ValidString(rec.Village))
	require.True(t, utf8.ValidString(rec.Taluk))

	want := verification("v-utf8")
	want.Village = rec.Village
	want.Taluk = rec.Taluk
	want.Owner = rec.Owner

	for name, h := range verificationStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, h.Append(context.Background(), want))
			got, err := h.Get(context.Background(), want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestVerificationHistory_RejectsCorruptRowOnLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	h := NewVerificationHistory(store, nil)

	query, args := entsql.Dialect(store.dialect).
		Insert(TableVerifications).
		Columns("id", "name", "status", "created_at", "payload").
		Values("bad", "x.pdf", "Verified", "2024-03-09T00:00:00Z", `{"id":"bad","confidence":250}`).
		Query()
	require.NoError(t, store.drv.Exec(ctx, query, args, nil))

	_, err := h.Get(ctx, "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = h.ListRecent(ctx, 0)
	assert.ErrorIs(t, err, common.ErrValidation)
}
