package completion

import (
	"regexp"
	"strings"
)

var (
	allTokenRegex         = regexp.MustCompile(`\w+(?:'\w+)?`)
	significantTokenRegex = regexp.MustCompile(`\w{3,}(?:'\w+)?`)
)

// AllTokens lowercases and returns every word-run in text, including
// apostrophe-joined contractions ("can't").
func AllTokens(text string) []string {
	return lowercaseAll(allTokenRegex.FindAllString(text, -1))
}

// SignificantTokens is AllTokens filtered to words of at least 3
// characters (ignoring short noise words like "a", "to", "is").
func SignificantTokens(text string) []string {
	return lowercaseAll(significantTokenRegex.FindAllString(text, -1))
}

func lowercaseAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
