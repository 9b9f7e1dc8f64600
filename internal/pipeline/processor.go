package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/extract"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
	"github.com/joseph-ayodele/landdoc-verifier/internal/insights"
	"github.com/joseph-ayodele/landdoc-verifier/internal/report"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

// Processor runs a document through extraction, analysis and verification,
// then hands the result to the report assembler. Each call is a linear chain.
type Processor struct {
	Logger    *slog.Logger
	Extract   *extract.Service
	Parser    *fields.Parser
	Analyzer  sections.Analyzer
	Engine    *verify.Engine
	Assembler *report.Assembler

	// LandMaxBytes is the intake limit for land documents.
	LandMaxBytes int64
	NewID        func() string
}

func NewProcessor(logger *slog.Logger, ext *extract.Service, parser *fields.Parser, analyzer sections.Analyzer, engine *verify.Engine, assembler *report.Assembler) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = fields.NewParser()
	}
	return &Processor{
		Logger:       logger,
		Extract:      ext,
		Parser:       parser,
		Analyzer:     analyzer,
		Engine:       engine,
		Assembler:    assembler,
		LandMaxBytes: constants.MaxLandUploadBytes,
		NewID:        func() string { return uuid.New().String() },
	}
}

// LandOutcome is everything produced for one land document.
type LandOutcome struct {
	Text         entity.ExtractedText      `json:"text"`
	Record       entity.DocumentRecord     `json:"record"`
	UsedFallback bool                      `json:"usedFallback"`
	KeyPoints    []string                  `json:"keyPoints"`
	Result       entity.VerificationResult `json:"result"`
	Report       report.Report             `json:"report"`
}

// ContractOutcome is everything produced for one contract.
type ContractOutcome struct {
	Text     entity.ExtractedText    `json:"text"`
	Analysis entity.ContractAnalysis `json:"analysis"`
	Overview insights.Overview       `json:"overview"`
	Report   report.Report           `json:"report"`
}

// ProcessLand extracts, parses and verifies a land document and records the
// result in history. Extraction errors are returned as-is; a registry failure
// is not an error and shows up in the result status.
func (p *Processor) ProcessLand(ctx context.Context, file entity.RawFile) (LandOutcome, error) {
	start := time.Now()
	text, err := p.Extract.WithMaxBytes(p.LandMaxBytes).Extract(ctx, file)
	if err != nil {
		p.Logger.Error("processor.land.extract_failed", "file_name", file.FileName, "error", err)
		return LandOutcome{}, err
	}

	rec, usedFallback := p.Parser.ParseWithFallback(text.Text, file.FileName)
	if usedFallback {
		p.Logger.Warn("processor.land.fallback_record", "file_name", file.FileName, "label", fields.FallbackLabel)
	}

	out := LandOutcome{
		Text:         text,
		Record:       rec,
		UsedFallback: usedFallback,
		KeyPoints:    insights.KeyPoints(text.Text),
		Result:       p.Engine.Verify(ctx, rec, file.FileName),
	}

	out.Report, err = p.Assembler.AssembleVerification(ctx, out.Result)
	if err != nil {
		p.Logger.Error("processor.land.assemble_failed", "id", out.Result.ID, "error", err)
		return out, err
	}
	p.Logger.Info("processor.land.ok",
		"file_name", file.FileName,
		"id", out.Result.ID,
		"status", out.Result.Status,
		"confidence", out.Result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// ProcessContract extracts and analyzes a contract. documentType may be empty,
// in which case it is read from the text when recognizable.
func (p *Processor) ProcessContract(ctx context.Context, file entity.RawFile, documentType string) (ContractOutcome, error) {
	start := time.Now()
	text, err := p.Extract.Extract(ctx, file)
	if err != nil {
		p.Logger.Error("processor.contract.extract_failed", "file_name", file.FileName, "error", err)
		return ContractOutcome{}, err
	}

	if strings.TrimSpace(documentType) == "" {
		if dt := p.Parser.Parse(text.Text).DocumentType; dt != constants.Unknown {
			documentType = dt
		}
	}

	analysis := entity.ContractAnalysis{
		ID:            p.NewID(),
		Name:          file.FileName,
		ExtractedText: text.Text,
		Summary:       insights.Summarize(text.Text),
		KeyPoints:     insights.KeyPoints(text.Text),
		Sections:      p.Analyzer.Analyze(ctx, text.Text, documentType),
	}
	out := ContractOutcome{
		Text:     text,
		Analysis: analysis,
		Overview: insights.ContractOverview(analysis.Sections),
	}

	out.Report, err = p.Assembler.AssembleContract(ctx, analysis)
	if err != nil {
		p.Logger.Error("processor.contract.assemble_failed", "id", analysis.ID, "error", err)
		return out, err
	}
	p.Logger.Info("processor.contract.ok",
		"file_name", file.FileName,
		"id", analysis.ID,
		"document_type", documentType,
		"strategy", p.Analyzer.Strategy(),
		"risk", out.Overview.RiskLevel,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// ProcessPath runs a file on disk through the pipeline for kind.
func (p *Processor) ProcessPath(ctx context.Context, path string, kind constants.JobKind) error {
	file, err := RawFileFromPath(path)
	if err != nil {
		return err
	}
	switch kind {
	case constants.JobKindContract:
		_, err = p.ProcessContract(ctx, file, "")
	case constants.JobKindLand, "":
		_, err = p.ProcessLand(ctx, file)
	default:
		err = fmt.Errorf("unknown job kind %q", kind)
	}
	return err
}

// RawFileFromPath describes a file on disk; its content is read on demand.
func RawFileFromPath(path string) (entity.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entity.RawFile{}, err
	}
	if info.IsDir() {
		return entity.RawFile{}, fmt.Errorf("%s is a directory", path)
	}
	return entity.RawFile{
		FileName: filepath.Base(path),
		Size:     info.Size(),
		Open:     func() ([]byte, error) { return os.ReadFile(path) },
	}, nil
}
