package entity

import (
	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// Alert is a single finding attached to a section.
type Alert struct {
	Message  string               `json:"message"`
	Level    constants.AlertLevel `json:"level"`
	Category string               `json:"category"`
}

// SectionAnalysis is the outcome for one clause category.
type SectionAnalysis struct {
	Title      string  `json:"title"`
	Key        string  `json:"key"`
	Content    string  `json:"content"`
	Alerts     []Alert `json:"alerts"`
	Confidence int     `json:"confidence"`
	HasContent bool    `json:"hasContent"`
}

// ContractAnalysis is the persisted result of a contract review.
type ContractAnalysis struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ExtractedText string            `json:"extractedText"`
	Summary       string            `json:"summary"`
	KeyPoints     []string          `json:"keyPoints"`
	Sections      []SectionAnalysis `json:"sections"`
}
