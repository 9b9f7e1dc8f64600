package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// richTextThreshold is the text length above which the generic reply quotes
// the opening sentence.
const richTextThreshold = 100

type topic struct {
	keyword string
	reply   func(rec entity.DocumentRecord, text string) string
}

// topics is matched in order against the lower-cased question.
var topics = []topic{
	{"key terms", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("Based on the document analysis, here are the key terms:\n• Document Type: %s\n• Owner: %s\n• Survey Number: %s\n• Area: %s\n• Location: %s",
			or(r.DocumentType, constants.Unknown), or(r.Owner, constants.Unknown), or(r.SurveyNumber, constants.Unknown),
			or(r.Area, constants.Unknown), location(r))
	}},
	{"payment", func(_ entity.DocumentRecord, text string) string {
		if mentions(text, "payment", "amount", "price") {
			return "The document contains payment terms that should be reviewed carefully. Please check the specific amounts, schedules, and conditions mentioned in the document."
		}
		return "Payment terms are not clearly defined in this document. This is an important area that needs attention and clarification."
	}},
	{"termination", func(_ entity.DocumentRecord, text string) string {
		if mentions(text, "termination", "end", "expire") {
			return "The document includes termination conditions that should be carefully reviewed. Please examine the specific terms and notice periods mentioned."
		}
		return "Termination conditions are not clearly defined in this document. This is a critical area that requires clarification."
	}},
	{"risks", func(_ entity.DocumentRecord, text string) string {
		if mentions(text, "risk", "liability", "penalty") {
			return "The document mentions several risk factors and liability considerations. Please review these carefully to understand your obligations and protections."
		}
		return "Risk factors and liability terms are not clearly outlined in this document. This is an important area that needs attention."
	}},
	{"obligations", func(entity.DocumentRecord, string) string {
		return "The document outlines various obligations for both parties. Key obligations include proper documentation, timely payments, and compliance with local regulations."
	}},
	{"survey", func(r entity.DocumentRecord, _ string) string {
		return "The survey number mentioned in this document is: " + or(r.SurveyNumber, constants.NotSpecified)
	}},
	{"area", func(r entity.DocumentRecord, _ string) string {
		return "The land area covered in this document is: " + or(r.Area, constants.NotSpecified)
	}},
	{"owner", func(r entity.DocumentRecord, _ string) string {
		return "The owner mentioned in this document is: " + or(r.Owner, constants.NotSpecified)
	}},
	{"location", func(r entity.DocumentRecord, _ string) string {
		return "The property is located in: " + location(r)
	}},
	{"property", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("Based on the document, this property is located at %s covering %s in %s.",
			or(r.SurveyNumber, "the specified survey number"), or(r.Area, "the specified area"), or(r.District, "the district"))
	}},
	{"description", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("The document describes a %s with the following details: Survey Number: %s, Area: %s, Owner: %s.",
			or(r.DocumentType, "property"), or(r.SurveyNumber, constants.NotSpecified), or(r.Area, constants.NotSpecified), or(r.Owner, constants.NotSpecified))
	}},
	{"dispute", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("The dispute resolution procedures in this %s may need attention. Make sure clear mechanisms are in place for handling conflicts.", or(r.DocumentType, "document"))
	}},
	{"confidentiality", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("Confidentiality terms in this %s should be clearly defined to protect sensitive information.", or(r.DocumentType, "document"))
	}},
	{"legal", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("There are several legal implications to consider for this %s. Consulting a legal professional is recommended to ensure full compliance and protection.", or(r.DocumentType, "document"))
	}},
	{"compliance", func(r entity.DocumentRecord, _ string) string {
		return fmt.Sprintf("Compliance requirements for this %s should be clearly outlined, including regulatory adherence and reporting obligations.", or(r.DocumentType, "document"))
	}},
}

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// Respond answers a question about a document from the record alone. It
// always returns a reply.
func Respond(question string, rec entity.DocumentRecord, text string) string {
	q := strings.ToLower(question)
	for _, t := range topics {
		if strings.Contains(q, t.keyword) {
			return t.reply(rec, text)
		}
	}

	intro := fmt.Sprintf("Based on the document analysis, I can see this is a %s for %s.", or(rec.DocumentType, "document"), or(rec.Owner, "the owner"))
	where := fmt.Sprintf("The property is located at %s covering %s in %s.",
		or(rec.SurveyNumber, "the specified survey number"), or(rec.Area, "the specified area"), or(rec.District, "the district"))
	outro := "Please ask me specific questions about terms, risks, or obligations for more detailed information."

	if len(text) > richTextThreshold {
		first := sentenceEnd.Split(text, 2)[0]
		return fmt.Sprintf("%s The document begins with: \"%s...\" %s %s", intro, strings.TrimSpace(first), where, outro)
	}
	return strings.Join([]string{intro, where, outro}, " ")
}

// Welcome is the greeting shown when a chat about rec opens.
func Welcome(rec entity.DocumentRecord) string {
	return fmt.Sprintf("Hello! I'm your document assistant. I've analyzed your %s for %s located in %s. I can help you understand the content, terms, risks, and legal implications. What would you like to know about this document?",
		or(rec.DocumentType, "document"), or(rec.Owner, "the property"), or(rec.District, "the specified location"))
}

var suggestions = map[string][]string{
	"land ownership contract": {
		"What are the key terms of this contract?",
		"What are the payment terms and conditions?",
		"What are the termination conditions?",
		"What are the main risks and obligations?",
		"What is the property description?",
		"What are the dispute resolution procedures?",
		"What are the confidentiality terms?",
	},
	"patta": {
		"What is the survey number mentioned?",
		"What is the land area and classification?",
		"Who is the current owner?",
		"What are the land boundaries?",
		"What are the tax obligations?",
		"What is the land use pattern?",
		"What are the revenue details?",
	},
	"chitta": {
		"What is the land classification?",
		"What are the revenue details?",
		"Who are the landowners?",
		"What is the land use pattern?",
		"What are the survey details?",
		"What are the cultivation details?",
		"What are the ownership rights?",
	},
	"title deed": {
		"What is the property description?",
		"Who are the legal owners?",
		"What are the encumbrances?",
		"What is the registration date?",
		"What are the terms and conditions?",
		"What are the transfer restrictions?",
		"What are the legal obligations?",
	},
	"default": {
		"What are the main points in this document?",
		"What are the key terms and conditions?",
		"What are the potential risks or issues?",
		"What are the obligations mentioned?",
		"What are the important dates or deadlines?",
		"What are the legal implications?",
		"What are the compliance requirements?",
	},
}

// Suggestions returns up to n suggested questions for a document type; n <= 0
// returns them all.
func Suggestions(documentType string, n int) []string {
	qs, ok := suggestions[strings.ToLower(strings.TrimSpace(documentType))]
	if !ok {
		qs = suggestions["default"]
	}
	if n > 0 && n < len(qs) {
		qs = qs[:n]
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

func or(v, def string) string {
	if v = strings.TrimSpace(v); v == "" || v == constants.Unknown {
		return def
	}
	return v
}

func location(r entity.DocumentRecord) string {
	return fmt.Sprintf("%s, %s, %s", or(r.District, constants.Unknown), or(r.Taluk, constants.Unknown), or(r.Village, constants.Unknown))
}

func mentions(text string, words ...string) bool {
	t := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
