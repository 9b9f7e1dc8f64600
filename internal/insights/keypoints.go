package insights

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxKeyPoints   = 5
	minKeyPoints   = 3
	noKeyPoints    = "No key points available."
	genericPadding = "Document contains Tamil Nadu land ownership and property information."
)

var documentKinds = []struct {
	keywords []string
	label    string
}{
	{[]string{"patta"}, "Patta Document (ownership record)"},
	{[]string{"chitta"}, "Chitta Record (land classification)"},
	{[]string{"a-register", "a register"}, "A-Register Extract (village accountant record)"},
	{[]string{"fmb", "field measurement"}, "Field Measurement Book (survey details)"},
	{[]string{"title deed"}, "Title Deed (ownership document)"},
	{[]string{"sale deed"}, "Sale Deed (property transfer)"},
	{[]string{"gift deed"}, "Gift Deed (property gift transfer)"},
}

// Owner names stop at the end of the line.
var (
	ownerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`owner[: ]+([a-z .]+)`),
		regexp.MustCompile(`pattadhar[: ]+([a-z .]+)`),
		regexp.MustCompile(`\b(?:shri|sri|mr|mrs|ms)\.?[ ]+([a-z .]+)`),
	}
	relationPattern = regexp.MustCompile(`(?:s/o|d/o|w/o)[ ]+([a-z .]+)`)

	surveyPattern  = regexp.MustCompile(`(?:sf|survey)\s*no\.?\s*[:\-]?\s*(\d+/?\d*-?\d*)`)
	areaPattern    = regexp.MustCompile(`(\d+\.?\d*)\s*(acres|acre|hectare|cents|cent)`)
	talukPattern   = regexp.MustCompile(`taluk[:\s]+([a-z\s]+)`)
	villagePattern = regexp.MustCompile(`village[:\s]+([a-z\s]+)`)
	datePattern    = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{4})`)
	regNoPattern   = regexp.MustCompile(`reg(?:istration)?\s*no\.?\s*[:\-]?\s*([a-z0-9/\-]+)`)
)

var (
	keyPointClassifications = []string{"wet", "dry", "irrigated", "garden", "residential", "commercial"}
	keyPointDistricts       = []string{"chennai", "coimbatore", "madurai", "salem", "vellore", "erode"}
)

// KeyPoints lists three to five short facts about a land document.
func KeyPoints(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{noKeyPoints}
	}
	t := strings.ToLower(text)

	var points []string
	add := func(prefix, v string) {
		if v != "" {
			points = append(points, prefix+v)
		}
	}
	if kind := documentKind(t); kind != "" {
		add("Document Type: ", fmt.Sprintf("This is a %s from Tamil Nadu land records.", kind))
	}
	add("Land Ownership: ", ownerPoint(t))
	add("Property Information: ", propertyPoint(t))
	add("Location Details: ", locationPoint(t))
	add("Legal Status: ", legalPoint(t))
	if len(points) < maxKeyPoints {
		add("Additional Information: ", additionalPoint(t))
	}

	for len(points) < minKeyPoints {
		points = append(points, genericPadding)
	}
	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}

func documentKind(t string) string {
	for _, k := range documentKinds {
		for _, kw := range k.keywords {
			if strings.Contains(t, kw) {
				return k.label
			}
		}
	}
	return ""
}

func ownerPoint(t string) string {
	for _, re := range ownerPatterns {
		if m := re.FindStringSubmatch(t); m != nil {
			words := strings.Fields(m[1])
			if len(words) == 0 {
				continue
			}
			if len(words) > 3 {
				words = words[:3]
			}
			return "Land is owned by " + strings.Join(words, " ")
		}
	}
	if m := relationPattern.FindStringSubmatch(t); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return "Property owner information includes " + name
		}
	}
	return ""
}

func propertyPoint(t string) string {
	var details []string
	if m := surveyPattern.FindStringSubmatch(t); m != nil {
		details = append(details, "Survey No. "+m[1])
	}
	if m := areaPattern.FindStringSubmatch(t); m != nil {
		details = append(details, fmt.Sprintf("Area: %s %s", m[1], m[2]))
	}
	for _, c := range keyPointClassifications {
		if strings.Contains(t, c) {
			details = append(details, "Classification: "+c+" land")
			break
		}
	}
	return strings.Join(details, ", ")
}

func locationPoint(t string) string {
	var parts []string
	for _, d := range keyPointDistricts {
		if strings.Contains(t, d) {
			parts = append(parts, "District: "+strings.ToUpper(d[:1])+d[1:])
			break
		}
	}
	if w := firstWord(talukPattern, t); w != "" {
		parts = append(parts, "Taluk: "+w)
	}
	if w := firstWord(villagePattern, t); w != "" {
		parts = append(parts, "Village: "+w)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Located in " + strings.Join(parts, ", ")
}

func legalPoint(t string) string {
	switch {
	case strings.Contains(t, "registered"):
		return "Document appears to be registered"
	case strings.Contains(t, "legal"), strings.Contains(t, "valid"):
		return "Document indicates legal validity"
	case strings.Contains(t, "patta"), strings.Contains(t, "title"):
		return "Document establishes ownership rights"
	}
	return ""
}

func additionalPoint(t string) string {
	if m := datePattern.FindStringSubmatch(t); m != nil {
		return "Document date: " + m[1]
	}
	if m := regNoPattern.FindStringSubmatch(t); m != nil {
		return "Registration number: " + m[1]
	}
	if strings.Contains(t, "boundary") || strings.Contains(t, "adjacent") || strings.Contains(t, "border") {
		return "Document contains boundary and adjacent property details"
	}
	return ""
}

func firstWord(re *regexp.Regexp, t string) string {
	m := re.FindStringSubmatch(t)
	if m == nil {
		return ""
	}
	if f := strings.Fields(m[1]); len(f) > 0 {
		return f[0]
	}
	return ""
}
