package llm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

const (
	SectionTextLimit = 2000
	ChatTextLimit    = 1000
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildSectionPrompt asks for one clause category in the CONTENT/ALERTS/CONFIDENCE/HAS_CONTENT grammar.
func BuildSectionPrompt(cat constants.Category, documentType, text string) string {
	title := cat.Title()
	lower := strings.ToLower(title)
	if strings.TrimSpace(documentType) == "" {
		documentType = "default"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a legal contract analyst. Analyze the following contract document for %s information.\n\n", lower)
	fmt.Fprintf(&b, "Contract Type: %s\n", documentType)
	fmt.Fprintf(&b, "Section: %s\n", title)
	fmt.Fprintf(&b, "Description: %s\n", cat.Description())
	if slices.Contains(constants.EmphasisFor(documentType), cat) {
		fmt.Fprintf(&b, "Priority: High (key section for %s documents)\n", documentType)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Document Text:\n%s\n\n", Truncate(text, SectionTextLimit))
	b.WriteString("Please provide a comprehensive analysis in the following format:\n\n")
	fmt.Fprintf(&b, "CONTENT: [Provide a detailed analysis of what is found or missing regarding %s. Be specific about terms, conditions, and any ambiguities.]\n\n", lower)
	b.WriteString("ALERTS: [List specific issues, missing elements, or concerns found. If no issues, state \"No critical issues found.\"]\n\n")
	b.WriteString("CONFIDENCE: [High/Medium/Low based on clarity and completeness of information]\n\n")
	b.WriteString("HAS_CONTENT: [Yes/No - whether the document contains relevant information for this section]\n\n")
	b.WriteString("Focus on identifying:\n")
	b.WriteString("1. What is clearly stated\n")
	b.WriteString("2. What is missing or unclear\n")
	b.WriteString("3. Potential risks or ambiguities\n")
	b.WriteString("4. Compliance with standard practices\n\n")
	b.WriteString("Be concise but thorough in your analysis.")
	return b.String()
}

// BuildChatPrompt embeds the record and the head of the document text around a user question.
func BuildChatPrompt(question string, rec entity.DocumentRecord, text string) string {
	orUnknown := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return constants.Unknown
		}
		return s
	}

	var b strings.Builder
	b.WriteString("You are a helpful document analysis assistant. Based on the following document information, answer the user's question accurately and helpfully.\n\n")
	b.WriteString("Document Information:\n")
	fmt.Fprintf(&b, "- Document Type: %s\n", orUnknown(rec.DocumentType))
	fmt.Fprintf(&b, "- Owner: %s\n", orUnknown(rec.Owner))
	fmt.Fprintf(&b, "- Survey Number: %s\n", orUnknown(rec.SurveyNumber))
	fmt.Fprintf(&b, "- Area: %s\n", orUnknown(rec.Area))
	fmt.Fprintf(&b, "- Location: %s, %s, %s\n", orUnknown(rec.District), orUnknown(rec.Taluk), orUnknown(rec.Village))
	fmt.Fprintf(&b, "- Classification: %s\n", orUnknown(rec.Classification))
	fmt.Fprintf(&b, "- Ownership Type: %s\n\n", orUnknown(rec.OwnershipType))
	if strings.TrimSpace(text) != "" {
		fmt.Fprintf(&b, "Document Content:\n%s...\n\n", Truncate(text, ChatTextLimit))
	}
	fmt.Fprintf(&b, "User Question: %s\n\n", strings.TrimSpace(question))
	b.WriteString("Please provide a comprehensive answer based on the document content:")
	return b.String()
}
