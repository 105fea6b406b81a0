// Package completion composes the engine's tab-completion pipeline:
// fuzzy filtering, case-preserving transforms, and a weighted duplex
// selector blending a Markov-trie source with a recency source.
package completion

import "strings"

// Params describes the cursor's position within the line currently
// being composed, the only input the completion pipeline needs.
type Params struct {
	LineToCursor string
}

// WordToComplete returns the (possibly empty) partial word directly
// touching the cursor.
func (p Params) WordToComplete() string {
	parts := strings.Split(p.LineToCursor, " ")
	return parts[len(parts)-1]
}

// WordIndex returns the zero-based index of the word under the
// cursor: a single word with no trailing whitespace is index 0.
func (p Params) WordIndex() int {
	n := len(strings.Split(p.LineToCursor, " ")) - 1
	if n < 0 {
		return 0
	}
	return n
}

// TokensBeforeCursor returns the lowercased word tokens preceding the
// cursor, excluding any partial word directly touching it.
func (p Params) TokensBeforeCursor() []string {
	words := AllTokens(p.LineToCursor)
	if len(words) == 0 {
		return words
	}
	last := words[len(words)-1]
	if strings.EqualFold(last, p.WordToComplete()) {
		words = words[:len(words)-1]
	}
	return words
}
