// Package app wires configuration into the running pipeline. Both binaries
// build their dependencies through it.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/landdoc-verifier/internal/chat"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/extract"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm/openai"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ocr"
	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
	"github.com/joseph-ayodele/landdoc-verifier/internal/registry"
	"github.com/joseph-ayodele/landdoc-verifier/internal/report"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
	"github.com/joseph-ayodele/landdoc-verifier/internal/server"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

type App struct {
	Config        *common.Config
	Logger        *slog.Logger
	Store         *repository.Store // nil with in-memory history
	Processor     *pipeline.Processor
	Assistant     *chat.Assistant
	Verifications repository.VerificationHistory
	Contracts     repository.ContractHistory
	Exporter      *export.Service
	Status        server.StatusInfo
}

// Options adjust what Build wires.
type Options struct {
	InMemory bool            // skip the database and keep history in process
	Renderer report.Renderer // nil -> text reports
	Portal   registry.Proxy  // nil -> from cfg.Registry
}

// NewLogger builds the slog handler described by cfg.
func NewLogger(cfg common.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Build opens the history store and assembles the pipeline.
func Build(ctx context.Context, cfg *common.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	if opts.InMemory {
		a.Verifications = repository.NewMemoryVerificationHistory()
		a.Contracts = repository.NewMemoryContractHistory()
	} else {
		store, err := server.ConnectDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.Store = store
		a.Verifications = repository.NewVerificationHistory(store, logger)
		a.Contracts = repository.NewContractHistory(store, logger)
	}

	gen := Generator(cfg.LLM, logger)
	analyzer := sections.New(cfg.Analysis, gen, logger)

	portal := opts.Portal
	if portal == nil {
		portal = Portal(cfg.Registry, logger)
	}

	recognizer := extract.NewOCRAdapter(ocr.NewExtractor(ocr.Config{
		Language:         cfg.OCR.Language,
		TessdataDir:      cfg.OCR.TessdataDir,
		WordConverter:    cfg.OCR.WordConverter,
		DPI:              cfg.OCR.DPI,
		MaxPages:         cfg.OCR.MaxPages,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, logger), logger)

	var asmOpts []report.AssemblerOption
	if opts.Renderer != nil {
		asmOpts = append(asmOpts, report.WithRenderer(opts.Renderer))
	}

	a.Processor = pipeline.NewProcessor(logger,
		extract.NewService(recognizer, extract.Options{
			MaxBytes:    cfg.Intake.MaxUploadBytes,
			Language:    cfg.OCR.Language,
			Concurrency: cfg.Intake.Concurrency,
		}, logger),
		fields.NewParser(),
		analyzer,
		verify.NewEngine(portal, registry.NewOwnershipClassifier(cfg.Registry.GovernmentSurveyNumbers), logger),
		report.NewAssembler(a.Verifications, a.Contracts, logger, asmOpts...),
	)
	a.Processor.LandMaxBytes = cfg.Intake.MaxLandUploadBytes
	a.Assistant = chat.NewAssistant(gen, logger)
	a.Exporter = export.NewService(a.Verifications, a.Contracts, logger)

	a.Status = server.StatusInfo{
		Strategy:     analyzer.Strategy(),
		RegistryMode: cfg.Registry.Mode,
		Database:     "memory",
	}
	if gen != nil {
		a.Status.Model = gen.Model()
		a.Status.GeneratorConfigured = true
	}
	if a.Store != nil {
		a.Status.Database = a.Store.Dialect()
	}

	logger.Info("app.ready",
		"strategy", a.Status.Strategy,
		"registry", a.Status.RegistryMode,
		"database", a.Status.Database,
		"generator", a.Status.GeneratorConfigured,
	)
	return a, nil
}

// Close releases the history store.
func (a *App) Close() {
	server.CloseDB(a.Store, a.Logger)
}

// Generator returns a throttled OpenAI client, or nil when no key is set.
func Generator(cfg common.LLMConfig, logger *slog.Logger) llm.Generator {
	client := openai.NewClient(openai.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}, logger)
	if !client.Configured() {
		return nil
	}
	return llm.NewThrottled(client, cfg.MinInterval)
}

// Portal picks the registry proxy for cfg.Mode.
func Portal(cfg common.RegistryConfig, logger *slog.Logger) registry.Proxy {
	if cfg.Mode == "http" {
		return registry.NewHTTPPortal(registry.HTTPConfig{
			BaseURL:        cfg.BaseURL,
			APIKey:         cfg.APIKey,
			Timeout:        cfg.Timeout,
			RateLimitDelay: cfg.RateLimitDelay,
		}, logger)
	}
	return registry.NewMockPortal(cfg.RateLimitDelay, logger)
}
