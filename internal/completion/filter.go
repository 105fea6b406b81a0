package completion

import "unicode"

// CandidateMatches reports whether candidate could complete
// wordToComplete: every character of wordToComplete must appear in
// candidate, in order (not necessarily contiguous), compared
// case-insensitively. An empty wordToComplete matches everything.
func CandidateMatches(wordToComplete, candidate string) bool {
	want := []rune(wordToComplete)
	have := []rune(candidate)

	pos := 0
	for _, w := range want {
		found := false
		for pos < len(have) {
			c := have[pos]
			pos++
			if unicode.ToLower(c) == unicode.ToLower(w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns the subsequence of candidates that CandidateMatches
// accepts for params.WordToComplete(), preserving order.
func Filter(params Params, candidates []string) []string {
	word := params.WordToComplete()
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if CandidateMatches(word, c) {
			out = append(out, c)
		}
	}
	return out
}
