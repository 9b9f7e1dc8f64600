package fields

import (
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// Field names accepted by Parser.Rules.
const (
	FieldDocumentType   = "documentType"
	FieldOwner          = "owner"
	FieldSurveyNumber   = "surveyNumber"
	FieldArea           = "area"
	FieldDistrict       = "district"
	FieldTaluk          = "taluk"
	FieldVillage        = "village"
	FieldClassification = "classification"
	FieldOwnershipType  = "ownershipType"
)

const (
	DefaultClassification = "Agricultural Land"
)

// Districts recognised by name, in priority order.
var Districts = []string{"chennai", "coimbatore", "madurai", "salem", "vellore", "erode"}

// Parser turns free text into a DocumentRecord. It holds no state between calls.
type Parser struct {
	rules map[string]RuleSet
}

func NewParser() *Parser {
	return &Parser{rules: DefaultRules()}
}

// Rules returns the rule set for one field.
func (p *Parser) Rules(field string) RuleSet {
	return p.rules[field]
}

// DefaultRules builds the rule table. Literal patterns precede generic ones so
// fixtures resolve the same way every time.
func DefaultRules() map[string]RuleSet {
	districtRules := make(RuleSet, 0, len(Districts)+1)
	for _, d := range Districts {
		districtRules = append(districtRules, Literal("district."+d, `(?i)`+d, titleWord(d)))
	}
	districtRules = append(districtRules,
		Capture("district.generic", `(?i)\bdistrict[:\s]+([a-z]+)`, func(m []string) string { return titleWord(m[1]) }))

	return map[string]RuleSet{
		FieldDocumentType: {
			Literal("doctype.patta", `(?i)patta`, "Patta"),
			Literal("doctype.chitta", `(?i)chitta`, "Chitta"),
			Literal("doctype.a_register", `(?i)a-register|a register`, "A-Register"),
			Literal("doctype.fmb", `(?i)fmb|field measurement`, "FMB"),
			Literal("doctype.title_deed", `(?i)title deed`, "Title Deed"),
			Literal("doctype.contract", `(?i)land ownership contract`, "Land Ownership Contract"),
		},
		FieldOwner: {
			Literal("owner.ramkumar", `(?i)ramkumar`, "RamKumar"),
			Capture("owner.label", `(?i)(?:owner|pattadhar)[:\s]+([a-zA-Z\s\.]+)`, ownerName),
			Capture("owner.honorific", `(?i)\b(?:shri|sri|mr|mrs|ms)\.?\s+([a-zA-Z\s\.]+)`, ownerName),
			Capture("owner.relation", `(?i)\b(?:s/o|d/o|w/o)\s+([a-zA-Z\s\.]+)`, ownerName),
			Capture("owner.party", `(?i)and\s+([a-zA-Z]+)\s*\(`, ownerName),
		},
		FieldSurveyNumber: {
			Literal("survey.sf_312_4", `(?i)sf\s*no\.?\s*312/4`, "SF No. 312/4"),
			Literal("survey.survey_312_4", `(?i)survey\s*no\.?\s*312/4`, "SF No. 312/4"),
			Capture("survey.generic", `(?i)(?:sf|survey)\s*no\.?\s*[:\-]?\s*(\d+/?\d*-?\d*)`, func(m []string) string {
				return "SF No. " + m[1]
			}),
		},
		FieldArea: {
			Literal("area.2_5_acres", `(?i)2\.5\s*acres`, "2.5 acres"),
			Capture("area.generic", `(?i)(\d+\.?\d*)\s*(acres|acre|hectares|hectare|cents|cent)`, func(m []string) string {
				return m[1] + " " + m[2]
			}),
		},
		FieldDistrict: districtRules,
		FieldTaluk: {
			Capture("taluk.label", `(?i)\btaluk[:\s]+([a-z]+)`, func(m []string) string { return titleWord(m[1]) }),
		},
		FieldVillage: {
			Capture("village.label", `(?i)\bvillage[:\s]+([a-z]+)`, func(m []string) string { return titleWord(m[1]) }),
		},
		FieldClassification: {
			Literal("class.dry", `(?i)dry land`, "Dry Land"),
			Literal("class.wet", `(?i)wet land`, "Wet Land"),
			Literal("class.irrigated", `(?i)irrigated`, "Irrigated Land"),
		},
		FieldOwnershipType: {
			Literal("ownership.government", `(?i)government|poramboke`, constants.OwnershipGovernment),
		},
	}
}

func ownerName(m []string) string {
	return firstWords(group(1)(m), 2)
}

// Parse applies every field's rules to text. It is pure: the same text always
// yields the same record, and no field is left empty.
func (p *Parser) Parse(text string) entity.DocumentRecord {
	get := func(field, def string) string {
		if v, _, ok := p.rules[field].Apply(text); ok {
			return v
		}
		return def
	}
	raw := text
	if strings.TrimSpace(raw) == "" {
		raw = constants.Unknown
	}
	return entity.DocumentRecord{
		DocumentType:   get(FieldDocumentType, constants.Unknown),
		Owner:          get(FieldOwner, constants.Unknown),
		SurveyNumber:   get(FieldSurveyNumber, constants.Unknown),
		Area:           get(FieldArea, constants.Unknown),
		District:       get(FieldDistrict, constants.Unknown),
		Taluk:          get(FieldTaluk, constants.Unknown),
		Village:        get(FieldVillage, constants.Unknown),
		Classification: get(FieldClassification, DefaultClassification),
		OwnershipType:  get(FieldOwnershipType, constants.OwnershipPrivate),
		RawText:        raw,
	}
}

// ParseWithFallback is Parse, switching to the filename table when neither the
// owner nor the survey number could be found. The second result reports whether
// the fallback was used.
func (p *Parser) ParseWithFallback(text, fileName string) (entity.DocumentRecord, bool) {
	rec := p.Parse(text)
	if rec.Owner != constants.Unknown || rec.SurveyNumber != constants.Unknown {
		return rec, false
	}
	return FallbackRecord(fileName), true
}

var defaultParser = NewParser()

// Parse runs the default rule table.
func Parse(text string) entity.DocumentRecord {
	return defaultParser.Parse(text)
}
