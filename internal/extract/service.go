package extract

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

type Options struct {
	MaxBytes    int64  // 0 -> constants.MaxUploadBytes
	Language    string // passed to the recognizer
	Concurrency int    // ExtractMany fan-out; 0 -> 4
}

// Service validates uploads and routes them to text decoding or OCR.
// PDF and Word files go through OCR like images do.
type Service struct {
	rec    Recognizer
	opts   Options
	logger *slog.Logger
}

func NewService(rec Recognizer, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = constants.MaxUploadBytes
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Service{rec: rec, opts: opts, logger: logger}
}

// WithMaxBytes returns a copy of the service with a different size limit.
func (s *Service) WithMaxBytes(n int64) *Service {
	cp := *s
	if n > 0 {
		cp.opts.MaxBytes = n
	}
	return &cp
}

// ResolveKind picks the kind from the declared MIME type, then the extension.
func ResolveKind(file entity.RawFile) constants.MimeKind {
	if k := constants.KindFromMIME(file.MimeType); k != "" {
		return k
	}
	return constants.MapExtToKind(filepath.Ext(file.FileName))
}

// Validate checks type and size without reading the payload.
func (s *Service) Validate(file entity.RawFile) (constants.MimeKind, error) {
	kind := ResolveKind(file)
	if !kind.Valid() {
		t := file.MimeType
		if t == "" {
			t = filepath.Ext(file.FileName)
		}
		return "", common.NewUnsupportedFileTypeError(file.FileName, t)
	}
	size := file.Size
	if n := int64(len(file.Payload)); n > size {
		size = n
	}
	if size > s.opts.MaxBytes {
		return "", common.NewFileTooLargeError(file.FileName, size, s.opts.MaxBytes)
	}
	return kind, nil
}

func (s *Service) Extract(ctx context.Context, file entity.RawFile) (entity.ExtractedText, error) {
	start := time.Now()
	kind, err := s.Validate(file)
	if err == nil {
		err = common.ValidateStruct(file)
	}
	if err != nil {
		metrics.DocumentsExtracted.WithLabelValues("unknown", "rejected").Inc()
		s.logger.Warn("extract.file.rejected", "file_name", file.FileName, "mime_type", file.MimeType, "error", err)
		return entity.ExtractedText{}, err
	}

	data := file.Payload
	if file.Open != nil {
		data, err = file.Open()
		if err != nil {
			metrics.DocumentsExtracted.WithLabelValues(string(kind), "failed").Inc()
			return entity.ExtractedText{}, common.WrapError(err, "read "+file.FileName)
		}
		if int64(len(data)) > s.opts.MaxBytes {
			return entity.ExtractedText{}, common.NewFileTooLargeError(file.FileName, int64(len(data)), s.opts.MaxBytes)
		}
	}

	var text string
	switch kind {
	case constants.MimeKindText:
		text = decodeText(data)
	default:
		text, err = s.rec.Recognize(ctx, data, file.FileName, kind, s.opts.Language)
		if err != nil {
			metrics.DocumentsExtracted.WithLabelValues(string(kind), "failed").Inc()
			s.logger.Error("extract.ocr.failed", "file_name", file.FileName, "kind", kind, "error", err)
			return entity.ExtractedText{}, common.NewOcrError(file.FileName, err)
		}
		text = strings.TrimSpace(text)
	}

	metrics.DocumentsExtracted.WithLabelValues(string(kind), "ok").Inc()
	metrics.ExtractDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	s.logger.Info("extract.file.ok",
		"file_name", file.FileName,
		"kind", kind,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.ExtractedText{
		SourceFileName: file.FileName,
		MimeKind:       kind,
		Text:           text,
		Success:        true,
	}, nil
}

// ExtractMany runs Extract over every file concurrently. A failing file becomes
// an unsuccessful entry and never affects its siblings.
func (s *Service) ExtractMany(ctx context.Context, files []entity.RawFile) BatchResult {
	results := make([]entity.ExtractedText, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i := range files {
		g.Go(func() error {
			res, err := s.Extract(gctx, files[i])
			if err != nil {
				s.logger.Warn("extract.file.failed", "file_name", files[i].FileName, "index", i, "error", err)
				res = entity.ExtractedText{
					SourceFileName: files[i].FileName,
					MimeKind:       ResolveKind(files[i]),
					Success:        false,
					Error:          err.Error(),
				}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := BatchResult{Results: results, TotalFiles: len(files)}
	for _, r := range results {
		if r.Success {
			out.SuccessCount++
		} else {
			out.FailureCount++
		}
	}
	s.logger.Info("extract.batch.done", "total", out.TotalFiles, "ok", out.SuccessCount, "failed", out.FailureCount)
	return out
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}
