package ocr

import (
	"regexp"
	"strings"
)

var (
	reDate   = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.](19|20)\d{2}\b|\b(19|20)\d{2}[/\-.]\d{1,2}[/\-.]\d{1,2}\b`)
	reSurvey = regexp.MustCompile(`\b(sf|survey|s\.f\.)\s*no\.?`)
	reArea   = regexp.MustCompile(`\d+(\.\d+)?\s*(acre|acres|hectare|hectares|cent|cents)\b`)
	reLandKw = regexp.MustCompile(`\b(patta|chitta|taluk|village|district|owner|pattadhar|contract|agreement)\b`)
)

// heuristicConfidence scores decoded text by land-record artifacts it contains.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2)
	if reDate.MatchString(txtL) {
		score += 0.15
	}
	if reSurvey.MatchString(txtL) {
		score += 0.2
	}
	if reArea.MatchString(txtL) {
		score += 0.15
	}
	if reLandKw.MatchString(txtL) {
		score += 0.2
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
