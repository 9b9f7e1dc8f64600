package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrderAndCatalog(t *testing.T) {
	cats := Categories()
	assert.Equal(t, []string{"payment", "duration", "confidentiality", "termination", "dispute", "liability", "intellectual", "compliance"}, AsStringSlice())
	for _, c := range cats {
		assert.NotEmpty(t, c.Title(), c)
		assert.NotEmpty(t, c.Description(), c)
	}
	cats[0] = Compliance
	assert.Equal(t, Payment, Categories()[0])
}

func TestCanonicalize(t *testing.T) {
	tests := map[string]Category{
		"IP":                 Intellectual,
		" Payment Terms ":    Payment,
		"nda":                Confidentiality,
		"dispute":            Dispute,
		"Arbitration":        Dispute,
		"indemnification":    Liability,
		"compliance":         Compliance,
		"termination clause": Termination,
	}
	for in, want := range tests {
		got, ok := Canonicalize(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := Canonicalize("weather")
	assert.False(t, ok)
	_, ok = Canonicalize("")
	assert.False(t, ok)
}

func TestEmphasisFor(t *testing.T) {
	assert.Contains(t, EmphasisFor("Patta"), Compliance)
	assert.Equal(t, defaultEmphasis, EmphasisFor("lease"))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, MimeKindPDF, KindFromMIME("application/pdf"))
	assert.Equal(t, MimeKindImage, KindFromMIME("image/jpeg"))
	assert.Equal(t, MimeKindText, KindFromMIME("text/plain; charset=utf-8"))
	assert.Equal(t, MimeKind(""), KindFromMIME("application/zip"))
	assert.Equal(t, MimeKindWord, MapExtToKind(".DOCX"))
	assert.False(t, MimeKind("zip").Valid())
}
