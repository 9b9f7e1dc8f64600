package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/insights"
)

const (
	verificationTitle = "Land Verification Report"
	contractTitle     = "Contract Analysis Report"
	subtitle          = "Tamil Nadu Land Records Verification System"
)

// ist is used for the "Generated on" footer.
var ist = time.FixedZone("IST", 5*60*60+30*60)

// Check glyphs.
const (
	GlyphSuccess = "✓"
	GlyphWarning = "!"
	GlyphError   = "✗"
)

// Pair is a labelled value; blank values render as "Not specified".
type Pair struct {
	Label string
	Value string
}

// Check is one row of the verification-checks table.
type Check struct {
	Name   string
	Glyph  string
	Result string
}

// Section is one titled block of a report. Only the populated parts render.
type Section struct {
	Title   string
	Badge   string
	Pairs   []Pair
	Checks  []Check
	Bullets []string
}

// Document is the renderer-neutral form of a report.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
	Footer   string
}

// VerificationDocument lays out a verification result. Missing values never
// cause an error.
func VerificationDocument(res entity.VerificationResult, now time.Time) Document {
	badge := "ISSUES"
	legal := "Issues Found"
	if res.IsLegal {
		badge = "VERIFIED"
		legal = "Legal & Valid"
	}

	doc := Document{
		Title:    verificationTitle,
		Subtitle: subtitle,
		Sections: []Section{
			{Title: "Document Information", Pairs: []Pair{
				{"Document Name", res.DocumentName},
				{"Document Type", res.DocumentType},
				{"Verification Date", res.UploadDate},
				{"Report ID", res.ID},
			}},
			{Title: "Verification Summary", Badge: badge, Pairs: []Pair{
				{"Status", res.Status},
				{"Confidence Score", fmt.Sprintf("%d%%", res.Confidence)},
				{"Ownership Type", res.OwnershipType},
				{"Legal Status", legal},
			}},
			{Title: "Verification Checks", Checks: Checks(res.VerificationDetails)},
			{Title: "Property Details", Pairs: []Pair{
				{"Survey Number", res.SurveyNumber},
				{"Area", res.Area},
				{"Owner", res.Owner},
				{"District", res.District},
				{"Taluk", res.Taluk},
				{"Village", res.Village},
				{"Classification", res.Classification},
			}},
		},
		Footer: footer(now),
	}
	if len(res.Discrepancies) > 0 {
		doc.Sections = append(doc.Sections, Section{Title: "Discrepancies Found", Bullets: res.Discrepancies})
	}
	return doc
}

// ContractDocument lays out a contract analysis with its overview.
func ContractDocument(c entity.ContractAnalysis, ov insights.Overview, now time.Time) Document {
	doc := Document{
		Title:    contractTitle,
		Subtitle: subtitle,
		Sections: []Section{
			{Title: "Document Information", Pairs: []Pair{
				{"Document Name", c.Name},
				{"Report ID", c.ID},
			}},
			{Title: "Contract Summary", Badge: strings.ToUpper(ov.RiskLevel) + " RISK", Pairs: []Pair{
				{"Summary", c.Summary},
				{"Assessment", ov.Summary},
				{"Risk Level", ov.RiskLevel},
				{"Compliance", ov.ComplianceStatus},
			}},
		},
		Footer: footer(now),
	}
	if len(c.KeyPoints) > 0 {
		doc.Sections = append(doc.Sections, Section{Title: "Key Points", Bullets: c.KeyPoints})
	}
	for _, sa := range c.Sections {
		s := Section{
			Title: sa.Title,
			Pairs: []Pair{
				{"Analysis", sa.Content},
				{"Confidence", fmt.Sprintf("%d%%", sa.Confidence)},
			},
		}
		for _, a := range sa.Alerts {
			s.Bullets = append(s.Bullets, fmt.Sprintf("[%s] %s", strings.ToUpper(string(a.Level)), a.Message))
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Checks turns the registry outcome into table rows, in field order.
func Checks(d entity.VerificationDetails) []Check {
	return []Check{
		statusCheck("registrationStatus", d.RegistrationStatus),
		boolCheck("portalMatch", d.PortalMatch),
		boolCheck("ownershipVerified", d.OwnershipVerified),
		boolCheck("boundariesConfirmed", d.BoundariesConfirmed),
		statusCheck("taxStatus", d.TaxStatus),
	}
}

func boolCheck(field string, ok bool) Check {
	if ok {
		return Check{Name: checkLabel(field), Glyph: GlyphSuccess, Result: "Verified"}
	}
	return Check{Name: checkLabel(field), Glyph: GlyphError, Result: "Failed"}
}

func statusCheck(field, v string) Check {
	glyph := GlyphWarning
	if v == constants.RegistrationRegistered || v == constants.TaxStatusCurrent {
		glyph = GlyphSuccess
	}
	return Check{Name: checkLabel(field), Glyph: glyph, Result: orNotSpecified(v)}
}

// checkLabel turns "portalMatch" into "Portal Match".
func checkLabel(field string) string {
	spaced := camelBoundary.ReplaceAllString(field, "$1 $2")
	return strings.ToUpper(spaced[:1]) + spaced[1:]
}

func footer(now time.Time) string {
	return "Generated on: " + now.In(ist).Format("2 January 2006, 03:04 PM")
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return constants.NotSpecified
	}
	return v
}
