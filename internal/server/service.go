package server

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/chat"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ingest"
	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
)

// StatusInfo is what the Status RPC reports about the running service.
type StatusInfo struct {
	Strategy            string `json:"strategy"`
	Model               string `json:"model"`
	GeneratorConfigured bool   `json:"generatorConfigured"`
	RegistryMode        string `json:"registryMode"`
	Database            string `json:"database"`
}

// DocumentService implements landdoc.v1.DocumentService over Struct messages.
type DocumentService struct {
	processor     *pipeline.Processor
	assistant     *chat.Assistant
	verifications repository.VerificationHistory
	contracts     repository.ContractHistory
	exporter      *export.Service
	ingestor      ingest.Ingestor
	status        StatusInfo
	logger        *slog.Logger
}

type Deps struct {
	Processor     *pipeline.Processor
	Assistant     *chat.Assistant
	Verifications repository.VerificationHistory
	Contracts     repository.ContractHistory
	Exporter      *export.Service
	Ingestor      ingest.Ingestor // optional; ingest RPCs are unavailable without it
	Status        StatusInfo
}

func NewDocumentService(d Deps, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	if d.Assistant == nil {
		d.Assistant = chat.NewAssistant(nil, logger)
	}
	return &DocumentService{
		processor:     d.Processor,
		assistant:     d.Assistant,
		verifications: d.Verifications,
		contracts:     d.Contracts,
		exporter:      d.Exporter,
		ingestor:      d.Ingestor,
		status:        d.Status,
		logger:        logger,
	}
}

type fileRequest struct {
	FileName     string `json:"fileName" validate:"required"`
	MimeType     string `json:"mimeType"`
	Content      []byte `json:"content"`
	DocumentType string `json:"documentType"`
}

func (r fileRequest) raw() entity.RawFile {
	return entity.RawFile{FileName: r.FileName, MimeType: r.MimeType, Size: int64(len(r.Content)), Payload: r.Content}
}

func (s *DocumentService) ExtractText(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req fileRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	text, err := s.processor.Extract.Extract(ctx, req.raw())
	if err != nil {
		return nil, err
	}
	return encode(text)
}

func (s *DocumentService) ExtractBatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		Files []fileRequest `json:"files" validate:"required,min=1,dive"`
	}
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	files := make([]entity.RawFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, f.raw())
	}
	return encode(s.processor.Extract.ExtractMany(ctx, files))
}

func (s *DocumentService) VerifyDocument(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req fileRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	out, err := s.processor.ProcessLand(ctx, req.raw())
	if err != nil {
		return nil, err
	}
	return encode(out)
}

type analyzeRequest struct {
	fileRequest
	Sections []string `json:"sections"`
}

// AnalyzeContract analyzes every section and stores the full analysis. When
// sections is set, only those sections are returned.
func (s *DocumentService) AnalyzeContract(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req analyzeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	only, err := sections.ParseCategories(req.Sections)
	if err != nil {
		return nil, err
	}
	out, err := s.processor.ProcessContract(ctx, req.raw(), req.DocumentType)
	if err != nil {
		return nil, err
	}
	out.Analysis.Sections = sections.Only(out.Analysis.Sections, only)
	return encode(out)
}

type askRequest struct {
	Question       string                 `json:"question"`
	VerificationID string                 `json:"verificationId"`
	ContractID     string                 `json:"contractId"`
	Record         *entity.DocumentRecord `json:"record"`
	Text           string                 `json:"text"`
}

// Ask answers a question about a document. The document comes from history
// when an id is given, otherwise from the inline record and text. An empty
// question returns the welcome message.
func (s *DocumentService) Ask(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req askRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	rec := emptyRecord()
	if req.Record != nil {
		rec = *req.Record
	}
	text := req.Text

	if id := strings.TrimSpace(req.VerificationID); id != "" {
		res, err := s.verifications.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		rec = recordFromResult(res)
	}
	if id := strings.TrimSpace(req.ContractID); id != "" {
		c, err := s.contracts.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		text = c.ExtractedText
		if req.Record == nil && req.VerificationID == "" {
			rec.DocumentType = "Land Ownership Contract"
		}
	}

	resp := struct {
		chat.Reply
		Suggestions []string `json:"suggestions"`
	}{Suggestions: chat.Suggestions(rec.DocumentType, 4)}

	if strings.TrimSpace(req.Question) == "" {
		resp.Reply = chat.Reply{Answer: chat.Welcome(rec), Source: chat.SourceRules}
	} else {
		resp.Reply = s.assistant.Ask(ctx, req.Question, rec, text)
	}
	return encode(resp)
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

type listRequest struct {
	Limit int `json:"limit" validate:"gte=0"`
}

func (s *DocumentService) GetVerification(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	res, err := s.verifications.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return encode(res)
}

func (s *DocumentService) ListVerifications(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	items, err := s.verifications.ListRecent(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	return encode(map[string]any{"verifications": items})
}

func (s *DocumentService) GetContract(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	c, err := s.contracts.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return encode(c)
}

func (s *DocumentService) ListContracts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	items, err := s.contracts.ListRecent(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	return encode(map[string]any{"contracts": items})
}

// GetReport re-renders the report for a stored verification or contract.
func (s *DocumentService) GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		ID   string            `json:"id" validate:"required"`
		Kind constants.JobKind `json:"kind" validate:"omitempty,oneof=land contract"`
	}
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	asm := s.processor.Assembler
	if req.Kind == constants.JobKindContract {
		c, err := s.contracts.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		rep, err := asm.RenderContract(c)
		if err != nil {
			return nil, err
		}
		return encode(rep)
	}
	res, err := s.verifications.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	rep, err := asm.RenderVerification(res)
	if err != nil {
		return nil, err
	}
	return encode(rep)
}

func (s *DocumentService) Status(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return encode(s.status)
}

func emptyRecord() entity.DocumentRecord {
	return entity.DocumentRecord{
		DocumentType:   constants.Unknown,
		Owner:          constants.Unknown,
		SurveyNumber:   constants.Unknown,
		Area:           constants.Unknown,
		District:       constants.Unknown,
		Taluk:          constants.Unknown,
		Village:        constants.Unknown,
		Classification: constants.Unknown,
		OwnershipType:  constants.Unknown,
		RawText:        constants.Unknown,
	}
}

func recordFromResult(r entity.VerificationResult) entity.DocumentRecord {
	return entity.DocumentRecord{
		DocumentType:   r.DocumentType,
		Owner:          r.Owner,
		SurveyNumber:   r.SurveyNumber,
		Area:           r.Area,
		District:       r.District,
		Taluk:          r.Taluk,
		Village:        r.Village,
		Classification: r.Classification,
		OwnershipType:  r.OwnershipType,
		RawText:        constants.Unknown,
	}
}
