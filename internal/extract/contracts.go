package extract

import (
	"context"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// Recognizer is the OCR collaborator: bytes in, text out.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte, fileName string, kind constants.MimeKind, language string) (string, error)
}

// TextExtractor turns one uploaded file into a text blob.
type TextExtractor interface {
	Extract(ctx context.Context, file entity.RawFile) (entity.ExtractedText, error)
}

// BatchResult is the outcome of ExtractMany. Results follow input order.
type BatchResult struct {
	Results      []entity.ExtractedText `json:"results"`
	TotalFiles   int                    `json:"totalFiles"`
	SuccessCount int                    `json:"successCount"`
	FailureCount int                    `json:"failureCount"`
}
