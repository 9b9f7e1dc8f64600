package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ocr"
)

type OCRAdapter struct {
	extractor *ocr.Extractor
	logger    *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, l *slog.Logger) *OCRAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &OCRAdapter{
		extractor: e,
		logger:    l,
	}
}

func (a *OCRAdapter) Recognize(ctx context.Context, data []byte, fileName string, kind constants.MimeKind, language string) (string, error) {
	r, err := a.extractor.Recognize(ctx, ocr.Request{
		Data:     data,
		FileName: fileName,
		Kind:     kind,
		Language: language,
	})
	if err != nil {
		return "", err
	}
	a.logger.Debug("ocr.done",
		"file_name", fileName,
		"method", r.Method,
		"pages", r.Pages,
		"confidence", r.Confidence,
		"elapsed_ms", r.Duration.Milliseconds(),
	)
	return r.Text, nil
}
