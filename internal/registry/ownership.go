package registry

import (
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// DefaultGovernmentSurveyNumbers are the known poramboke parcels.
var DefaultGovernmentSurveyNumbers = []string{"SF No. 999/1", "SF No. 888/2"}

// OwnershipClassifier marks survey numbers on the denylist as government land.
type OwnershipClassifier struct {
	government map[string]struct{}
}

func NewOwnershipClassifier(surveyNumbers []string) *OwnershipClassifier {
	if surveyNumbers == nil {
		surveyNumbers = DefaultGovernmentSurveyNumbers
	}
	m := make(map[string]struct{}, len(surveyNumbers))
	for _, s := range surveyNumbers {
		m[normalizeSurvey(s)] = struct{}{}
	}
	return &OwnershipClassifier{government: m}
}

// Classify returns Government for denylisted survey numbers and Private otherwise.
func (c *OwnershipClassifier) Classify(surveyNumber string) string {
	if _, ok := c.government[normalizeSurvey(surveyNumber)]; ok {
		return constants.OwnershipGovernment
	}
	return constants.OwnershipPrivate
}

func normalizeSurvey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
