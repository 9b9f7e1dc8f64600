package fields

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor turns a regexp submatch into a field value. An empty result means no match.
type Extractor func(m []string) string

// Rule is one (pattern, extractor) probe.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract Extractor
}

// RuleSet is evaluated in order; the first rule producing a value wins.
type RuleSet []Rule

// Apply returns the first extracted value and the name of the rule that produced it.
func (rs RuleSet) Apply(text string) (value, rule string, ok bool) {
	for _, r := range rs {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(r.Extract(m)); v != "" {
			return v, r.Name, true
		}
	}
	return "", "", false
}

// Literal yields a fixed value whenever pattern matches.
func Literal(name, pattern, value string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Extract: func([]string) string { return value },
	}
}

// Capture yields format applied to the submatches.
func Capture(name, pattern string, format func(m []string) string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Extract: format,
	}
}

// group returns submatch i trimmed, or "".
func group(i int) Extractor {
	return func(m []string) string {
		if i >= len(m) {
			return ""
		}
		return strings.TrimSpace(m[i])
	}
}

func firstWords(s string, n int) string {
	w := strings.Fields(s)
	if len(w) > n {
		w = w[:n]
	}
	return strings.Join(w, " ")
}

func titleWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
