package sections

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// Reply grammar prefixes.
const (
	prefixContent    = "CONTENT:"
	prefixAlerts     = "ALERTS:"
	prefixConfidence = "CONFIDENCE:"
	prefixHasContent = "HAS_CONTENT:"
)

const noIssuesPhrase = "no critical issues found"

// Confidence values for the ordinal levels in a reply.
const (
	ConfidenceHigh    = 90
	ConfidenceMedium  = 60
	ConfidenceLow     = 30
	ConfidenceUnknown = 0
)

type block int

const (
	blockNone block = iota
	blockContent
	blockAlerts
)

// ParseReply reads the CONTENT/ALERTS/CONFIDENCE/HAS_CONTENT grammar. When no
// CONTENT line is present it returns the templated fallback section together
// with an error wrapping common.ErrParseFailure.
func ParseReply(reply string, cat constants.Category, text string) (entity.SectionAnalysis, error) {
	var (
		content    []string
		alerts     []entity.Alert
		confidence = ConfidenceMedium
		hasContent bool
		sawContent bool
		open       = blockNone
	)

	addAlert := func(msg string) {
		msg = stripBullet(msg)
		if msg == "" || strings.Contains(strings.ToLower(msg), noIssuesPhrase) {
			return
		}
		alerts = append(alerts, entity.Alert{Message: msg, Level: constants.AlertWarning, Category: string(cat)})
	}

	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case hasPrefixFold(line, prefixContent):
			open = blockContent
			sawContent = true
			if v := strings.TrimSpace(line[len(prefixContent):]); v != "" {
				content = append(content, v)
			}
		case hasPrefixFold(line, prefixAlerts):
			open = blockAlerts
			addAlert(strings.TrimSpace(line[len(prefixAlerts):]))
		case hasPrefixFold(line, prefixConfidence):
			open = blockNone
			confidence = confidenceFromWord(line[len(prefixConfidence):])
		case hasPrefixFold(line, prefixHasContent):
			open = blockNone
			hasContent = strings.HasPrefix(strings.ToLower(strings.TrimSpace(line[len(prefixHasContent):])), "yes")
		case open == blockContent:
			content = append(content, line)
		case open == blockAlerts:
			addAlert(line)
		}
	}

	if !sawContent || len(content) == 0 {
		return Fallback(cat, text), fmt.Errorf("%w: no CONTENT line for %s", common.ErrParseFailure, cat)
	}
	if len(alerts) == 0 {
		alerts = []entity.Alert{noIssuesAlert(cat)}
	}
	return entity.SectionAnalysis{
		Title:      cat.Title(),
		Key:        string(cat),
		Content:    strings.Join(content, " "),
		Alerts:     alerts,
		Confidence: confidence,
		HasContent: hasContent,
	}, nil
}

// Fallback is the templated section used when a reply cannot be parsed.
func Fallback(cat constants.Category, text string) entity.SectionAnalysis {
	lowerTitle := strings.ToLower(cat.Title())
	lowerText := strings.ToLower(text)

	content := fmt.Sprintf("No specific information found regarding %s. This section may need attention or clarification.", lowerTitle)
	if strings.Contains(lowerText, string(cat)) || strings.Contains(lowerText, lowerTitle) {
		content = fmt.Sprintf("The document contains information related to %s, but detailed analysis could not be performed. Please review this section manually.", lowerTitle)
	}
	return entity.SectionAnalysis{
		Title:   cat.Title(),
		Key:     string(cat),
		Content: content,
		Alerts: []entity.Alert{{
			Message:  fmt.Sprintf("Analysis for %s could not be completed automatically. Manual review recommended.", lowerTitle),
			Level:    constants.AlertWarning,
			Category: string(cat),
		}},
		Confidence: ConfidenceUnknown,
		HasContent: false,
	}
}

func confidenceFromWord(s string) int {
	w := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(w, "high"):
		return ConfidenceHigh
	case strings.HasPrefix(w, "medium"):
		return ConfidenceMedium
	case strings.HasPrefix(w, "low"):
		return ConfidenceLow
	}
	return ConfidenceMedium
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func stripBullet(s string) string {
	s = strings.TrimSpace(s)
	for _, b := range []string{"- ", "* ", "• "} {
		s = strings.TrimPrefix(s, b)
	}
	if i := strings.Index(s, ". "); i > 0 && i <= 3 && isDigits(s[:i]) {
		s = s[i+2:]
	}
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
