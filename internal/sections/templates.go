package sections

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

var successContent = map[constants.Category][]string{
	constants.Payment: {
		"Clear payment terms identified: Monthly payments of $2,500 due on the 1st of each month. Payment methods include bank transfer and check. Late payment penalties are clearly defined.",
		"Payment structure is well-defined with quarterly installments of $7,500. Includes detailed late fee structure and acceptable payment methods.",
		"Comprehensive payment terms found: Annual payment of $30,000 with option for monthly installments. Clear late payment consequences and grace period specified.",
	},
	constants.Duration: {
		"Contract duration clearly specified: 24-month term starting from execution date with automatic renewal option for additional 12 months.",
		"Duration terms are explicit: 36-month contract period with early termination clauses and renewal provisions clearly outlined.",
		"Contract period well-defined: 18-month initial term with three 12-month renewal options. Termination notice requirements are clearly stated.",
	},
	constants.Confidentiality: {
		"Strong confidentiality provisions identified: 5-year non-disclosure period with comprehensive protection of proprietary information and trade secrets.",
		"Confidentiality clause is comprehensive: Covers all business information with 7-year protection period and clear breach consequences.",
		"Robust confidentiality terms: Includes mutual non-disclosure obligations with indefinite duration for trade secrets and 3-year period for other information.",
	},
	constants.Termination: {
		"Clear termination conditions: 30-day written notice required for early termination. Includes provisions for material breach and force majeure events.",
		"Termination clause is well-structured: Specifies conditions for termination with cause, without cause, and automatic termination scenarios.",
		"Comprehensive termination terms: 60-day notice period, clear breach definitions, and procedures for termination due to insolvency or change of control.",
	},
	constants.Dispute: {
		"Dispute resolution mechanism clearly defined: Mandatory mediation followed by binding arbitration under AAA rules. Governing law is specified.",
		"Comprehensive dispute resolution: Three-tier approach with negotiation, mediation, and arbitration. Clear jurisdiction and governing law provisions.",
		"Well-structured dispute resolution: Includes escalation procedures, mediation requirements, and final arbitration with specified rules and venue.",
	},
	constants.Liability: {
		"Liability provisions are balanced: Mutual indemnification with reasonable liability caps. Insurance requirements are clearly specified.",
		"Comprehensive liability framework: Includes limitation of liability, indemnification clauses, and insurance coverage requirements.",
		"Well-balanced liability terms: Clear allocation of risks, indemnification procedures, and insurance obligations for both parties.",
	},
	constants.Intellectual: {
		"IP ownership clearly defined: Pre-existing IP remains with original owner, new IP jointly owned. Licensing terms are well-specified.",
		"Intellectual property terms are comprehensive: Clear ownership of background IP, joint ownership of developments, and licensing arrangements.",
		"Robust IP provisions: Defines ownership of existing and new intellectual property with clear licensing and usage rights.",
	},
	constants.Compliance: {
		"Compliance requirements are comprehensive: Includes regulatory reporting, audit rights, and compliance monitoring procedures.",
		"Strong compliance framework: Covers all applicable regulations with regular reporting requirements and compliance verification procedures.",
		"Comprehensive compliance terms: Includes regulatory adherence, audit provisions, and compliance certification requirements.",
	},
}

var issueContent = map[constants.Category][]string{
	constants.Payment: {
		"Payment terms are partially defined but lack clarity on late payment consequences and acceptable payment methods.",
		"Basic payment structure identified but missing details on installment schedules and penalty provisions.",
		"Payment information is incomplete: Amount specified but missing payment schedule and method details.",
	},
	constants.Duration: {
		"Contract duration mentioned but renewal terms and early termination conditions are not clearly specified.",
		"Duration period identified but lacks clarity on extension options and termination notice requirements.",
		"Contract term is stated but missing details on renewal procedures and termination conditions.",
	},
	constants.Confidentiality: {
		"Confidentiality provisions exist but protection period and scope of covered information are not clearly defined.",
		"Basic confidentiality terms present but lack comprehensive protection measures and breach consequences.",
		"Confidentiality clause is minimal: Missing duration, scope, and enforcement provisions.",
	},
	constants.Termination: {
		"Termination conditions are mentioned but notice periods and breach definitions are not clearly specified.",
		"Basic termination clause present but lacks detailed procedures and consequences for different termination scenarios.",
		"Termination terms are incomplete: Missing notice requirements and breach definitions.",
	},
	constants.Dispute: {
		"Dispute resolution mentioned but specific procedures and governing law are not clearly defined.",
		"Basic dispute resolution framework exists but lacks detailed escalation procedures and venue specifications.",
		"Dispute resolution terms are incomplete: Missing mediation requirements and arbitration procedures.",
	},
	constants.Liability: {
		"Liability provisions are present but caps and indemnification procedures are not clearly specified.",
		"Basic liability framework exists but lacks comprehensive coverage and insurance requirements.",
		"Liability terms are incomplete: Missing indemnification procedures and insurance obligations.",
	},
	constants.Intellectual: {
		"IP ownership mentioned but licensing terms and usage rights are not clearly defined.",
		"Basic intellectual property terms exist but lack comprehensive ownership and licensing provisions.",
		"IP provisions are minimal: Missing ownership details and licensing arrangements.",
	},
	constants.Compliance: {
		"Compliance requirements mentioned but specific procedures and monitoring are not clearly defined.",
		"Basic compliance framework exists but lacks detailed reporting and audit requirements.",
		"Compliance terms are incomplete: Missing regulatory adherence and verification procedures.",
	},
}

// pool returns the templates for cat, using payment's for unknown keys.
func pool(m map[constants.Category][]string, cat constants.Category) []string {
	if p, ok := m[cat]; ok {
		return p
	}
	return m[constants.Payment]
}

func minorAlerts(cat constants.Category) []entity.Alert {
	title := cat.Title()
	return []entity.Alert{
		{Message: fmt.Sprintf("Minor improvement possible in %s documentation.", strings.ToLower(title)), Level: constants.AlertInfo, Category: string(cat)},
		{Message: fmt.Sprintf("%s is generally well-defined with room for minor enhancements.", title), Level: constants.AlertInfo, Category: string(cat)},
	}
}

func issueAlerts(cat constants.Category) []entity.Alert {
	title := cat.Title()
	return []entity.Alert{
		{Message: fmt.Sprintf("%s requires attention due to incomplete information.", title), Level: constants.AlertWarning, Category: string(cat)},
		{Message: fmt.Sprintf("Manual review recommended for %s section.", strings.ToLower(title)), Level: constants.AlertWarning, Category: string(cat)},
		{Message: fmt.Sprintf("%s lacks comprehensive coverage and needs clarification.", title), Level: constants.AlertError, Category: string(cat)},
	}
}
