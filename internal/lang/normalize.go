// Package lang rewrites mixed English/Chichewa commands into a canonical
// English keyword stream the command grammar understands.
//
// Normalization is a pure function of the input and the static vocabulary
// tables in vocabulary.go. It never fails: text with no vocabulary hits is
// returned lowercased and trimmed, otherwise untouched. Re-normalizing an
// already-normalized string is a no-op.
//
// All substitutions are whole-word-bounded so a phrase appearing inside a
// longer word ("pa" in "kupanda") is never corrupted.
package lang

import (
	"regexp"
	"strings"
)

type rule struct {
	re    *regexp.Regexp
	token string
}

var (
	priceRe      *regexp.Regexp
	numberRules  []rule
	keywordRules []rule
)

func init() {
	priceRe = regexp.MustCompile(`\b(?:` + strings.Join(quoteAll(pricePhrases), "|") + `)\b`)
	numberRules = compile(numberWords)
	keywordRules = compile(keywords)
}

func quoteAll(phrases []string) []string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return quoted
}

func compile(entries []entry) []rule {
	rules := make([]rule, len(entries))
	for i, e := range entries {
		rules[i] = rule{
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(e.phrase) + `\b`),
			token: e.token,
		}
	}
	return rules
}

// Normalize lowercases and trims raw input, rewrites price-preposition
// phrases to "at", spells number words as digits, and applies the bilingual
// keyword table, longest phrases first.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = priceRe.ReplaceAllLiteralString(s, "at")

	for _, r := range numberRules {
		s = r.re.ReplaceAllLiteralString(s, r.token)
	}
	for _, r := range keywordRules {
		s = r.re.ReplaceAllLiteralString(s, r.token)
	}

	// Collapse runs of whitespace left behind by multi-word substitutions.
	return strings.Join(strings.Fields(s), " ")
}
