package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/extract"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
	"github.com/joseph-ayodele/landdoc-verifier/internal/registry"
	"github.com/joseph-ayodele/landdoc-verifier/internal/report"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

const landText = "PATTA\nOwner: RamKumar, Survey No. 312/4, 2.5 acres, village Perungalathur\nDistrict: Chennai"

type rig struct {
	proc          *Processor
	verifications repository.VerificationHistory
	contracts     repository.ContractHistory
}

func newRig(t *testing.T, portal registry.Proxy) rig {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := common.DefaultConfig().Analysis
	cfg.Seed = 7

	vh := repository.NewMemoryVerificationHistory()
	ch := repository.NewMemoryContractHistory()
	proc := NewProcessor(logger,
		extract.NewService(nil, extract.Options{}, logger),
		fields.NewParser(),
		sections.NewSynthesis(cfg, logger),
		verify.NewEngine(portal, registry.NewOwnershipClassifier(nil), logger),
		report.NewAssembler(vh, ch, logger),
	)
	return rig{proc: proc, verifications: vh, contracts: ch}
}

func textFile(name, body string) entity.RawFile {
	return entity.RawFile{FileName: name, MimeType: "text/plain", Size: int64(len(body)), Payload: []byte(body)}
}

func TestProcessLand_Verified(t *testing.T) {
	r := newRig(t, registry.NewMockPortal(0, nil))

	out, err := r.proc.ProcessLand(context.Background(), textFile("patta.txt", landText))
	require.NoError(t, err)

	assert.False(t, out.UsedFallback)
	assert.Equal(t, "RamKumar", out.Record.Owner)
	assert.Equal(t, constants.StatusVerified, out.Result.Status)
	assert.True(t, out.Result.IsLegal)
	assert.Empty(t, out.Result.Discrepancies)
	assert.NotEmpty(t, out.KeyPoints)
	assert.True(t, strings.HasPrefix(out.Report.FileName, "land_verification_report_"+out.Result.ID))

	stored, err := r.verifications.Get(context.Background(), out.Result.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Result.ID, stored.ID)
}

func TestProcessLand_RegistryFailureIsRecorded(t *testing.T) {
	portal := registry.NewMockPortal(0, nil, registry.WithLookup(func(entity.DocumentRecord) (entity.VerificationDetails, error) {
		return entity.VerificationDetails{}, errors.New("portal down")
	}))
	r := newRig(t, portal)

	out, err := r.proc.ProcessLand(context.Background(), textFile("patta.txt", landText))
	require.NoError(t, err)
	assert.Equal(t, constants.StatusProcessingFailed, out.Result.Status)
	assert.Equal(t, []string{verify.DiscrepancyTechnicalFailed}, out.Result.Discrepancies)

	recent, err := r.verifications.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestProcessLand_TooLarge(t *testing.T) {
	r := newRig(t, registry.NewMockPortal(0, nil))
	r.proc.LandMaxBytes = 8

	_, err := r.proc.ProcessLand(context.Background(), textFile("patta.txt", landText))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFileTooLarge)

	recent, err := r.verifications.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestProcessContract(t *testing.T) {
	r := newRig(t, registry.NewMockPortal(0, nil))
	r.proc.NewID = func() string { return "c-1" }

	body := "This Land Ownership Contract is made between the seller and the buyer. " +
		"The buyer shall pay the total amount in two installments. " +
		"Either party may terminate this agreement with thirty days notice."
	out, err := r.proc.ProcessContract(context.Background(), textFile("contract.txt", body), "")
	require.NoError(t, err)

	assert.Equal(t, "c-1", out.Analysis.ID)
	assert.Equal(t, "contract.txt", out.Analysis.Name)
	assert.Len(t, out.Analysis.Sections, len(constants.Categories()))
	assert.NotEmpty(t, out.Analysis.Summary)
	assert.NotEmpty(t, out.Overview.RiskLevel)
	assert.True(t, strings.HasPrefix(out.Report.FileName, "contract_analysis_report_c-1_"))

	stored, err := r.contracts.Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, body, stored.ExtractedText)
}

func TestProcessPath_BatchWithOneFailure(t *testing.T) {
	r := newRig(t, registry.NewMockPortal(0, nil))
	dir := t.TempDir()

	files := map[string]string{
		"a.txt": landText,
		"b.txt": "Chitta\nSurvey No. 45/2 village Kolathur",
		"c.xyz": "not a supported type",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	var failed []string
	for _, name := range []string{"a.txt", "b.txt", "c.xyz"} {
		if err := r.proc.ProcessPath(context.Background(), filepath.Join(dir, name), constants.JobKindLand); err != nil {
			failed = append(failed, name)
			assert.ErrorIs(t, err, common.ErrUnsupportedFileType)
		}
	}
	assert.Equal(t, []string{"c.xyz"}, failed)

	recent, err := r.verifications.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestProcessPath_Errors(t *testing.T) {
	r := newRig(t, registry.NewMockPortal(0, nil))
	dir := t.TempDir()

	require.Error(t, r.proc.ProcessPath(context.Background(), filepath.Join(dir, "missing.txt"), constants.JobKindLand))
	require.Error(t, r.proc.ProcessPath(context.Background(), dir, constants.JobKindLand))

	p := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o600))
	require.Error(t, r.proc.ProcessPath(context.Background(), p, constants.JobKind("bogus")))
}
