package constants

import (
	"mime"
	"strings"
)

// MimeKind is the coarse input family the extraction service understands.
type MimeKind string

const (
	MimeKindPDF   MimeKind = "pdf"
	MimeKindImage MimeKind = "image"
	MimeKindWord  MimeKind = "word"
	MimeKindText  MimeKind = "text"
)

// Upload limits in bytes.
const (
	MaxUploadBytes     int64 = 50 << 20
	MaxLandUploadBytes int64 = 10 << 20
)

// AllowedExtensions maps a normalized extension to its kind.
var AllowedExtensions = map[string]MimeKind{
	"pdf":  MimeKindPDF,
	"jpg":  MimeKindImage,
	"jpeg": MimeKindImage,
	"png":  MimeKindImage,
	"tif":  MimeKindImage,
	"tiff": MimeKindImage,
	"bmp":  MimeKindImage,
	"webp": MimeKindImage,
	"doc":  MimeKindWord,
	"docx": MimeKindWord,
	"txt":  MimeKindText,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind returns the kind for ext, or "" if the extension is not supported.
func MapExtToKind(ext string) MimeKind {
	return AllowedExtensions[NormalizeExt(ext)]
}

// KindFromMIME classifies a declared MIME type. Unknown types return "".
func KindFromMIME(mimeType string) MimeKind {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(mimeType))
	}
	switch {
	case mt == "application/pdf":
		return MimeKindPDF
	case strings.HasPrefix(mt, "image/"):
		return MimeKindImage
	case mt == "application/msword",
		mt == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return MimeKindWord
	case mt == "text/plain":
		return MimeKindText
	}
	return ""
}

// Valid reports whether k is one of the supported kinds.
func (k MimeKind) Valid() bool {
	switch k {
	case MimeKindPDF, MimeKindImage, MimeKindWord, MimeKindText:
		return true
	}
	return false
}
