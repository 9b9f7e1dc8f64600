package fields

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

func assertNoEmptyFields(t *testing.T, rec entity.DocumentRecord) {
	t.Helper()
	v := reflect.ValueOf(rec)
	for i := 0; i < v.NumField(); i++ {
		assert.NotEmpty(t, v.Field(i).String(), "field %s is empty", v.Type().Field(i).Name)
	}
}

func TestParse_OwnerSurveyArea(t *testing.T) {
	rec := Parse("Owner: RamKumar, Survey No. 312/4, 2.5 acres, village Perungalathur")

	assert.Equal(t, "RamKumar", rec.Owner)
	assert.Contains(t, rec.SurveyNumber, "312/4")
	assert.Contains(t, rec.Area, "2.5")
	assert.Equal(t, "Perungalathur", rec.Village)
	assertNoEmptyFields(t, rec)
}

func TestParse_Fields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field func(entity.DocumentRecord) string
		want  string
	}{
		{"doc type first match wins", "Chitta extract attached to Patta", func(r entity.DocumentRecord) string { return r.DocumentType }, "Patta"},
		{"a register", "Copy of the A Register", func(r entity.DocumentRecord) string { return r.DocumentType }, "A-Register"},
		{"field measurement book", "Field Measurement sketch", func(r entity.DocumentRecord) string { return r.DocumentType }, "FMB"},
		{"title deed", "This Title Deed witnesseth", func(r entity.DocumentRecord) string { return r.DocumentType }, "Title Deed"},
		{"pattadhar label", "Pattadhar: Muthu Selvan Raja", func(r entity.DocumentRecord) string { return r.Owner }, "Muthu Selvan"},
		{"honorific", "issued to Shri Arjun Das of", func(r entity.DocumentRecord) string { return r.Owner }, "Arjun Das"},
		{"relation", "Lakshmi W/O Ganesan Pillai", func(r entity.DocumentRecord) string { return r.Owner }, "Ganesan Pillai"},
		{"party clause", "between the State and Kavitha (the Owner)", func(r entity.DocumentRecord) string { return r.Owner }, "Kavitha"},
		{"generic survey", "SF No: 45/2", func(r entity.DocumentRecord) string { return r.SurveyNumber }, "SF No. 45/2"},
		{"survey with subdivision", "survey no. 101/3-1", func(r entity.DocumentRecord) string { return r.SurveyNumber }, "SF No. 101/3-1"},
		{"generic area", "extent 3 cents of land", func(r entity.DocumentRecord) string { return r.Area }, "3 cents"},
		{"hectares", "measuring 1.25 hectare", func(r entity.DocumentRecord) string { return r.Area }, "1.25 hectare"},
		{"known district", "SALEM district records", func(r entity.DocumentRecord) string { return r.District }, "Salem"},
		{"generic district", "District: tiruvallur", func(r entity.DocumentRecord) string { return r.District }, "Tiruvallur"},
		{"taluk", "Taluk: OMALUR", func(r entity.DocumentRecord) string { return r.Taluk }, "Omalur"},
		{"wet land", "classified as wet land", func(r entity.DocumentRecord) string { return r.Classification }, "Wet Land"},
		{"irrigated", "irrigated by canal", func(r entity.DocumentRecord) string { return r.Classification }, "Irrigated Land"},
		{"default classification", "nothing here", func(r entity.DocumentRecord) string { return r.Classification }, DefaultClassification},
		{"poramboke", "Poramboke land", func(r entity.DocumentRecord) string { return r.OwnershipType }, constants.OwnershipGovernment},
		{"private by default", "private plot", func(r entity.DocumentRecord) string { return r.OwnershipType }, constants.OwnershipPrivate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field(Parse(tt.text)))
		})
	}
}

func TestParse_NeverEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "lorem ipsum", "SF No.", "owner:"} {
		rec := Parse(text)
		assertNoEmptyFields(t, rec)
	}
	rec := Parse("")
	assert.Equal(t, constants.Unknown, rec.Owner)
	assert.Equal(t, constants.Unknown, rec.SurveyNumber)
	assert.Equal(t, constants.Unknown, rec.DocumentType)
	assert.Equal(t, constants.Unknown, rec.RawText)
}

func TestParse_IsPure(t *testing.T) {
	text := "Patta No 12. Pattadhar: Selvi. SF No. 77/1, 4 acres, Madurai district, taluk Melur, village Kottampatti"
	first := Parse(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Parse(text))
	}
}

func TestParseWithFallback(t *testing.T) {
	p := NewParser()

	rec, used := p.ParseWithFallback("scanned noise only", "my_patta_scan.jpg")
	require.True(t, used)
	assert.Equal(t, "Patta", rec.DocumentType)
	assert.Equal(t, "RamKumar", rec.Owner)
	assert.Equal(t, FallbackLabel, rec.RawText)
	assertNoEmptyFields(t, rec)

	rec, used = p.ParseWithFallback("SF No. 12/1", "my_patta_scan.jpg")
	assert.False(t, used)
	assert.Equal(t, "SF No. 12/1", rec.SurveyNumber)
	assert.Equal(t, constants.Unknown, rec.Owner)
}

func TestFallbackRecord_FilenameTable(t *testing.T) {
	assert.Equal(t, "Chitta", FallbackRecord("CHITTA.pdf").DocumentType)
	assert.Equal(t, "Title Deed", FallbackRecord("title-2020.pdf").DocumentType)
	assert.Equal(t, "Land Ownership Contract", FallbackRecord("scan.pdf").DocumentType)
}

func TestRuleSet_ReportsRuleName(t *testing.T) {
	v, rule, ok := NewParser().Rules(FieldSurveyNumber).Apply("sf no 312/4")
	require.True(t, ok)
	assert.Equal(t, "SF No. 312/4", v)
	assert.Equal(t, "survey.sf_312_4", rule)
}

func TestParse_CaseFoldedCapturesStayValidUTF8(t *testing.T) {
	rec := Parse("Owner: Ravi, Survey No. 12/3, village \u017fembakkam, District: \u212aanchipuram")

	assert.Equal(t, "Sembakkam", rec.Village)
	assert.Equal(t, "Kanchipuram", rec.District)
	v := reflect.ValueOf(rec)
	for i := 0; i < v.NumField(); i++ {
		assert.True(t, utf8.ValidString(v.Field(i).String()), "field %s", v.Type().Field(i).Name)
	}
}
