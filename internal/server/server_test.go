package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/async"
	"github.com/joseph-ayodele/landdoc-verifier/internal/chat"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/extract"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ingest"
	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
	"github.com/joseph-ayodele/landdoc-verifier/internal/registry"
	"github.com/joseph-ayodele/landdoc-verifier/internal/report"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

const landText = "PATTA\nOwner: RamKumar, Survey No. 312/4, 2.5 acres, village Perungalathur\nDistrict: Chennai"

type nopQueue struct{ jobs []async.Job }

func (q *nopQueue) Enqueue(_ context.Context, j async.Job) error { q.jobs = append(q.jobs, j); return nil }
func (q *nopQueue) Shutdown(context.Context)                       {}

func newClient(t *testing.T) *grpc.ClientConn {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := common.DefaultConfig().Analysis
	cfg.Seed = 3

	vh := repository.NewMemoryVerificationHistory()
	ch := repository.NewMemoryContractHistory()
	proc := pipeline.NewProcessor(logger,
		extract.NewService(nil, extract.Options{}, logger),
		fields.NewParser(),
		sections.NewSynthesis(cfg, logger),
		verify.NewEngine(registry.NewMockPortal(0, logger), nil, logger),
		report.NewAssembler(vh, ch, logger),
	)
	svc := NewDocumentService(Deps{
		Processor:     proc,
		Assistant:     chat.NewAssistant(nil, logger),
		Verifications: vh,
		Contracts:     ch,
		Exporter:      export.NewService(vh, ch, logger),
		Ingestor:      ingest.NewFSIngestor(&nopQueue{}, logger),
		Status:        StatusInfo{Strategy: sections.StrategySynthesis, RegistryMode: "mock"},
	}, logger)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryInterceptor(logger)))
	RegisterDocumentService(srv, svc)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func call(t *testing.T, conn *grpc.ClientConn, method string, req map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	t.Helper()
	in, err := structpb.NewStruct(req)
	require.NoError(t, err)
	out := &structpb.Struct{}
	if err := conn.Invoke(context.Background(), FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func textUpload(name, body string) map[string]any {
	return map[string]any{
		"fileName": name,
		"mimeType": "text/plain",
		"content":  base64.StdEncoding.EncodeToString([]byte(body)),
	}
}

func TestStatus(t *testing.T) {
	conn := newClient(t)
	var hdr metadata.MD
	out, err := call(t, conn, "Status", nil, grpc.Header(&hdr))
	require.NoError(t, err)
	assert.Equal(t, sections.StrategySynthesis, out["strategy"])
	assert.Equal(t, false, out["generatorConfigured"])
	assert.NotEmpty(t, hdr.Get(RequestIDHeader))
}

func TestVerifyThenHistory(t *testing.T) {
	conn := newClient(t)

	out, err := call(t, conn, "VerifyDocument", textUpload("patta.txt", landText))
	require.NoError(t, err)
	result := out["result"].(map[string]any)
	assert.Equal(t, constants.StatusVerified, result["status"])
	assert.Equal(t, true, result["isLegal"])
	assert.EqualValues(t, 100, result["confidence"])
	id := result["id"].(string)

	got, err := call(t, conn, "GetVerification", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "RamKumar", got["owner"])

	list, err := call(t, conn, "ListVerifications", map[string]any{"limit": 5})
	require.NoError(t, err)
	assert.Len(t, list["verifications"], 1)

	rep, err := call(t, conn, "GetReport", map[string]any{"id": id, "kind": "land"})
	require.NoError(t, err)
	assert.Contains(t, rep["fileName"], "land_verification_report_"+id)

	ans, err := call(t, conn, "Ask", map[string]any{"question": "Who is the owner?", "verificationId": id})
	require.NoError(t, err)
	assert.Contains(t, ans["answer"], "RamKumar")
	assert.Equal(t, chat.SourceRules, ans["source"])
	assert.Len(t, ans["suggestions"], 4)
}

func TestAnalyzeContract(t *testing.T) {
	conn := newClient(t)
	body := "This agreement is made between the seller and the buyer. The buyer shall pay in two installments."

	out, err := call(t, conn, "AnalyzeContract", textUpload("lease.txt", body))
	require.NoError(t, err)
	analysis := out["analysis"].(map[string]any)
	assert.Len(t, analysis["sections"], len(constants.Categories()))
	assert.NotEmpty(t, out["overview"].(map[string]any)["riskLevel"])

	got, err := call(t, conn, "GetContract", map[string]any{"id": analysis["id"]})
	require.NoError(t, err)
	assert.Equal(t, body, got["extractedText"])
}

func TestAnalyzeContract_SectionFilter(t *testing.T) {
	conn := newClient(t)
	req := textUpload("lease.txt", "The buyer shall pay the seller in two installments.")
	req["sections"] = []any{"compliance", "IP"}

	out, err := call(t, conn, "AnalyzeContract", req)
	require.NoError(t, err)
	analysis := out["analysis"].(map[string]any)
	secs := analysis["sections"].([]any)
	require.Len(t, secs, 2)
	assert.Equal(t, "intellectual", secs[0].(map[string]any)["key"])
	assert.Equal(t, "compliance", secs[1].(map[string]any)["key"])

	stored, err := call(t, conn, "GetContract", map[string]any{"id": analysis["id"]})
	require.NoError(t, err)
	assert.Len(t, stored["sections"], len(constants.Categories()))

	req["sections"] = []any{"weather"}
	_, err = call(t, conn, "AnalyzeContract", req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExtractBatch_ReportsPerFile(t *testing.T) {
	conn := newClient(t)
	out, err := call(t, conn, "ExtractBatch", map[string]any{"files": []any{
		textUpload("a.txt", "one"),
		textUpload("b.txt", "two"),
		map[string]any{"fileName": "c.exe", "mimeType": "application/x-msdownload", "content": ""},
	}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out["totalFiles"])
	assert.EqualValues(t, 2, out["successCount"])
	assert.EqualValues(t, 1, out["failureCount"])
}

func TestErrorsMapToStatusCodes(t *testing.T) {
	conn := newClient(t)

	_, err := call(t, conn, "ExtractText", map[string]any{"fileName": "x.exe", "mimeType": "application/x-msdownload"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = call(t, conn, "GetVerification", map[string]any{"id": "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = call(t, conn, "VerifyDocument", map[string]any{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = call(t, conn, "ExportHistory", map[string]any{"fromDate": "09/03/2024"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExportHistory(t *testing.T) {
	conn := newClient(t)
	_, err := call(t, conn, "VerifyDocument", textUpload("patta.txt", landText))
	require.NoError(t, err)

	out, err := call(t, conn, "ExportHistory", map[string]any{})
	require.NoError(t, err)
	content, err := base64.StdEncoding.DecodeString(out["content"].(string))
	require.NoError(t, err)
	assert.Equal(t, "PK", string(content[:2]))
}

func TestAsk_EmptyQuestionIsWelcome(t *testing.T) {
	conn := newClient(t)
	out, err := call(t, conn, "Ask", map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out["answer"], "Hello! I'm your document assistant.")
}

func TestIngestFile_RequiresPath(t *testing.T) {
	conn := newClient(t)
	_, err := call(t, conn, "IngestFile", map[string]any{"kind": "land"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = call(t, conn, "IngestFile", map[string]any{"path": "/tmp/x.pdf", "kind": "bogus"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExportWindow(t *testing.T) {
	w, err := exportRequest{FromDate: "2024-03-01"}.window(mustDate("2024-03-09"))
	require.NoError(t, err)
	require.NotNil(t, w.To)
	assert.Equal(t, "2024-03-09", w.To.Format(verify.DateLayout))
}

func mustDate(s string) time.Time {
	t, err := time.Parse(verify.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIngestFile_PathTooLong(t *testing.T) {
	conn := newClient(t)
	_, err := call(t, conn, "IngestFile", map[string]any{"path": "/" + strings.Repeat("a", maxPathLen)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUnaryInterceptor_ScopedLoggerAndPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ic := UnaryInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("Status")}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "rid-42"))

	_, err := ic(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		common.LoggerFromContext(ctx, nil).Info("handler.event")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=handler.event request_id=rid-42")

	resp, err := ic(ctx, nil, info, func(context.Context, any) (any, error) { panic("boom") })
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), info.FullMethod)
}
