package insights

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// Risk and compliance labels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"

	Compliant     = "Compliant"
	NeedsReview   = "Needs Review"
	NonCompliant  = "Non-Compliant"
	overviewError = "Contract analysis could not be completed automatically. Manual review recommended."
)

// weakConfidence marks a section as needing attention.
const weakConfidence = 50

// Overview is the contract-level roll-up of the section outcomes.
type Overview struct {
	Summary          string   `json:"summary"`
	KeyTerms         []string `json:"keyTerms"`
	RiskLevel        string   `json:"riskLevel"`
	ComplianceStatus string   `json:"complianceStatus"`
}

// ContractOverview rates a contract from its sections. A section needs
// attention when its confidence is weak or it carries an error alert.
func ContractOverview(sections []entity.SectionAnalysis) Overview {
	if len(sections) == 0 || allFailed(sections) {
		return Overview{
			Summary:          overviewError,
			KeyTerms:         []string{"Analysis not available"},
			RiskLevel:        RiskMedium,
			ComplianceStatus: NeedsReview,
		}
	}

	var (
		weak       []string
		terms      []string
		compliance = Compliant
	)
	for _, sa := range sections {
		if needsAttention(sa) {
			weak = append(weak, strings.ToLower(sa.Title))
			terms = append(terms, sa.Title+" needs clarification")
			if sa.Key == string(constants.Compliance) {
				compliance = NonCompliant
			}
			continue
		}
		terms = append(terms, sa.Title+" well-defined")
	}

	risk := RiskLow
	switch {
	case len(weak) > len(sections)/2:
		risk = RiskHigh
	case len(weak) > 0:
		risk = RiskMedium
	}
	if compliance == Compliant && len(weak) > 0 {
		compliance = NeedsReview
	}

	summary := fmt.Sprintf("Contract reviewed across %d clause categories; all are clearly addressed.", len(sections))
	if len(weak) > 0 {
		summary = fmt.Sprintf("Contract reviewed across %d clause categories; %d need attention: %s.",
			len(sections), len(weak), strings.Join(weak, ", "))
	}
	return Overview{
		Summary:          summary,
		KeyTerms:         terms,
		RiskLevel:        risk,
		ComplianceStatus: compliance,
	}
}

func needsAttention(sa entity.SectionAnalysis) bool {
	if sa.Confidence < weakConfidence {
		return true
	}
	for _, a := range sa.Alerts {
		if a.Level == constants.AlertError || a.Level == constants.AlertCritical {
			return true
		}
	}
	return false
}

func allFailed(sections []entity.SectionAnalysis) bool {
	for _, sa := range sections {
		if sa.Confidence > 0 || sa.HasContent {
			return false
		}
	}
	return true
}
