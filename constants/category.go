package constants

import (
	"strings"
)

// Category is one of the fixed clause buckets every contract is analyzed against.
type Category string

const (
	Payment         Category = "payment"
	Duration        Category = "duration"
	Confidentiality Category = "confidentiality"
	Termination     Category = "termination"
	Dispute         Category = "dispute"
	Liability       Category = "liability"
	Intellectual    Category = "intellectual"
	Compliance      Category = "compliance"
)

// allCategories is the analysis order; callers rely on it being stable.
var allCategories = []Category{
	Payment,
	Duration,
	Confidentiality,
	Termination,
	Dispute,
	Liability,
	Intellectual,
	Compliance,
}

// Categories returns a copy of the ordered category list.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps user input such as "IP" or "Payment Terms" onto a category.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Category{
		"payment terms":               Payment,
		"payments":                    Payment,
		"contract duration":           Duration,
		"term":                        Duration,
		"confidentiality clause":      Confidentiality,
		"nda":                         Confidentiality,
		"termination clause":          Termination,
		"dispute resolution":          Dispute,
		"arbitration":                 Dispute,
		"liability & indemnification": Liability,
		"indemnification":             Liability,
		"intellectual property":       Intellectual,
		"ip":                          Intellectual,
		"compliance & regulations":    Compliance,
		"regulatory":                  Compliance,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return "", false
}

// emphasis lists the categories that matter most per document type.
var emphasis = map[string][]Category{
	"land ownership contract": {Payment, Duration, Confidentiality, Termination, Dispute, Liability},
	"patta":                   {Duration, Termination, Dispute, Liability, Compliance},
	"chitta":                  {Duration, Termination, Dispute, Liability, Compliance},
	"title deed":              {Duration, Termination, Dispute, Liability, Compliance},
	"a-register":              {Duration, Termination, Dispute, Liability, Compliance},
	"fmb":                     {Duration, Termination, Dispute, Liability, Compliance},
}

var defaultEmphasis = []Category{Payment, Duration, Confidentiality, Termination, Dispute, Liability}

// EmphasisFor returns the weighted categories for a document type, falling back to the default set.
func EmphasisFor(documentType string) []Category {
	if cats, ok := emphasis[strings.ToLower(strings.TrimSpace(documentType))]; ok {
		return cats
	}
	return defaultEmphasis
}

type categoryInfo struct {
	title       string
	description string
}

var catalog = map[Category]categoryInfo{
	Payment:         {"Payment Terms", "Payment schedule, amounts, methods, and terms"},
	Duration:        {"Contract Duration", "Start date, end date, renewal terms, and extension conditions"},
	Confidentiality: {"Confidentiality Clause", "Non-disclosure terms, data protection, and privacy measures"},
	Termination:     {"Termination Clause", "Termination conditions, notice periods, and exit procedures"},
	Dispute:         {"Dispute Resolution", "Arbitration, mediation, governing law, and jurisdiction"},
	Liability:       {"Liability & Indemnification", "Liability limits, indemnification, and insurance requirements"},
	Intellectual:    {"Intellectual Property", "IP ownership, licensing, and usage rights"},
	Compliance:      {"Compliance & Regulations", "Regulatory compliance, audit rights, and reporting requirements"},
}

// Title is the display name, e.g. "Payment Terms".
func (c Category) Title() string {
	return catalog[c].title
}

// Description lists what the section covers.
func (c Category) Description() string {
	return catalog[c].description
}
