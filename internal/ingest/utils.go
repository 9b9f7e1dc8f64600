package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// AllowedExt reports whether the extraction service accepts files with ext.
func AllowedExt(ext string) bool {
	return constants.MapExtToKind(ext).Valid()
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && strings.HasPrefix(base, ".")
}
