package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

type Config struct {
	Pdftotext     string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	WordConverter string // if empty -> "soffice"

	Language string // default "eng"
	DPI      int    // rasterization DPI for PDFs, default 300
	MaxPages int    // 0 = no limit

	TessdataDir         string
	EnableTSVConfidence bool

	// NativePDFText tries pdftotext before rasterizing. Off by default so every
	// PDF goes through OCR.
	NativePDFText bool

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	ArtifactCacheDir string
}

// Request is a single recognition call.
type Request struct {
	Data     []byte
	FileName string
	Kind     constants.MimeKind
	Language string // overrides Config.Language when set
}

type Result struct {
	Text       string
	Pages      int
	Kind       constants.MimeKind
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr" | "word-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return NewExtractorWithRunner(cfg, execRunner{}, logger)
}

// NewExtractorWithRunner is NewExtractor with an injected command runner.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.WordConverter == "" {
		cfg.WordConverter = "soffice"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: runner, logger: logger}
}

// Recognize spools the payload to a temp file and runs the strategy for its kind.
func (e *Extractor) Recognize(ctx context.Context, req Request) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "ldv-ocr-*")
	if err != nil {
		return Result{}, err
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			e.logger.Warn("failed to remove temp dir", "path", path, "error", err)
		}
	}(tmpDir)

	name := filepath.Base(req.FileName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	in := filepath.Join(tmpDir, name)
	if err := os.WriteFile(in, req.Data, 0o600); err != nil {
		return Result{}, err
	}

	if req.Language != "" && req.Language != e.cfg.Language {
		cp := *e
		cp.cfg.Language = req.Language
		return cp.extract(ctx, in, req.Kind, contentHash(req.Data))
	}
	return e.extract(ctx, in, req.Kind, contentHash(req.Data))
}

// ExtractPath runs recognition on a file already on disk, picking the kind from its extension.
func (e *Extractor) ExtractPath(ctx context.Context, path string) (Result, error) {
	kind := constants.MapExtToKind(filepath.Ext(path))
	return e.extract(ctx, path, kind, "")
}

func (e *Extractor) extract(ctx context.Context, path string, kind constants.MimeKind, hashHex string) (Result, error) {
	start := time.Now()
	e.logger.Debug("starting ocr extraction", "path", path, "kind", kind)

	var (
		res Result
		err error
	)
	switch kind {
	case constants.MimeKindPDF:
		res, err = e.extractPDF(ctx, path)
	case constants.MimeKindImage:
		res, err = e.extractImage(ctx, path)
	case constants.MimeKindWord:
		res, err = e.extractWord(ctx, path, hashHex)
	default:
		e.logger.Error("unsupported ocr kind", "kind", kind, "path", path)
		return Result{}, fmt.Errorf("unsupported kind: %q", kind)
	}
	res.Duration = time.Since(start)
	if err == nil && res.Confidence < ImageConfidenceThreshold {
		e.logger.Warn("ocr.low_confidence", "path", path, "confidence", res.Confidence, "method", res.Method)
	}
	return res, err
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	var warns []string
	if e.cfg.NativePDFText {
		txt, pages, w, err := e.pdfToText(ctx, path)
		warns = append(warns, w...)
		if err == nil && len(Normalize(txt)) > 0 {
			txt = Normalize(txt)
			return Result{
				Text:       txt,
				Pages:      pages,
				Kind:       constants.MimeKindPDF,
				Method:     "pdf-text",
				Language:   e.cfg.Language,
				Warnings:   warns,
				Confidence: heuristicConfidence(txt),
			}, nil
		}
		if err != nil {
			warns = append(warns, "pdftotext failed, falling back to ocr: "+err.Error())
		}
	}

	txt, pages, w, err := e.pdfToOCR(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		return Result{Kind: constants.MimeKindPDF, Warnings: warns}, err
	}
	txt = Normalize(txt)
	return Result{
		Text:       txt,
		Pages:      pages,
		Kind:       constants.MimeKindPDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
		Confidence: heuristicConfidence(txt),
	}, nil
}

func contentHash(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
