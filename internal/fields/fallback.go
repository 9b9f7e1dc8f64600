package fields

import (
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// FallbackLabel marks records that came from the filename table instead of the text.
const FallbackLabel = "Document processed with fallback data"

var filenameDocTypes = []struct {
	keyword string
	docType string
}{
	{"patta", "Patta"},
	{"chitta", "Chitta"},
	{"title", "Title Deed"},
}

// FallbackRecord returns the canned record for fileName.
func FallbackRecord(fileName string) entity.DocumentRecord {
	rec := entity.DocumentRecord{
		DocumentType:   "Land Ownership Contract",
		Owner:          "RamKumar",
		SurveyNumber:   "SF No. 312/4",
		Area:           "2.5 acres",
		District:       "Chennai",
		Taluk:          "Tambaram",
		Village:        "Perungalathur",
		Classification: "Dry Land",
		OwnershipType:  constants.OwnershipPrivate,
		RawText:        FallbackLabel,
	}
	lower := strings.ToLower(fileName)
	for _, f := range filenameDocTypes {
		if strings.Contains(lower, f.keyword) {
			rec.DocumentType = f.docType
			break
		}
	}
	return rec
}
