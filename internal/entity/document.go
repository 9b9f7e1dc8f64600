package entity

import (
	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// RawFile is an uploaded payload; it only lives for the duration of extraction.
type RawFile struct {
	FileName string `validate:"required"`
	MimeType string
	Size     int64 `validate:"gte=0"`
	Payload  []byte
	// Open, when set, is used instead of Payload to read the content lazily.
	Open func() ([]byte, error) `validate:"-"`
}

// ExtractedText is the single text blob produced from one RawFile.
type ExtractedText struct {
	SourceFileName string             `json:"sourceFileName"`
	MimeKind       constants.MimeKind `json:"mimeKind"`
	Text           string             `json:"text"`
	Success        bool               `json:"success"`
	Error          string             `json:"error,omitempty"`
}

// DocumentRecord is the structured fact set parsed from document text.
// Every field holds either a matched value or constants.Unknown.
type DocumentRecord struct {
	DocumentType   string `json:"documentType"`
	Owner          string `json:"owner"`
	SurveyNumber   string `json:"surveyNumber"`
	Area           string `json:"area"`
	District       string `json:"district"`
	Taluk          string `json:"taluk"`
	Village        string `json:"village"`
	Classification string `json:"classification"`
	OwnershipType  string `json:"ownershipType"`
	RawText        string `json:"rawText"`
}
