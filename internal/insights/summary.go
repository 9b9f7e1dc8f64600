package insights

import (
	"regexp"
	"sort"
	"strings"
)

const (
	summarySentences = 3
	noSummary        = "No summary available."
)

var (
	sentenceBreak   = regexp.MustCompile(`\.\s+`)
	clausePunct     = regexp.MustCompile(`[;:,]`)
	summaryKeywords = regexp.MustCompile(`(?i)(agree|shall|must|owner|survey|area|district|village|taluk|document|contract|payment|date)`)
)

// Summarize picks the three highest-scoring sentences and returns them in
// their original order.
func Summarize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return noSummary
	}

	type scored struct {
		s     string
		idx   int
		score int
	}
	var all []scored
	for i, s := range splitSentences(text) {
		all = append(all, scored{s: s, idx: i, score: scoreSentence(s)})
	}
	if len(all) == 0 {
		return noSummary
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	if len(all) > summarySentences {
		all = all[:summarySentences]
	}
	sort.Slice(all, func(i, j int) bool { return all[i].idx < all[j].idx })

	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.s
	}
	return strings.Join(out, " ")
}

// splitSentences breaks after each period, keeping the period.
func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		out = append(out, s)
	}
	return out
}

func scoreSentence(s string) int {
	score := 0
	if len(s) > 80 {
		score += 2
	}
	if clausePunct.MatchString(s) {
		score++
	}
	if summaryKeywords.MatchString(s) {
		score += 2
	}
	return score
}
