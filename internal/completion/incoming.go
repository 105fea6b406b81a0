package completion

import "github.com/wireline-mud/wireline/internal/ansi"

// IncomingWords tracks the set of distinct words seen in text received
// from the connection, independent of the sent-text markov/recency
// pipeline, and offers them transformed to match the casing of the
// word currently being completed.
type IncomingWords struct {
	words map[string]struct{}
}

// NewIncomingWords returns an empty word set.
func NewIncomingWords() *IncomingWords {
	return &IncomingWords{words: make(map[string]struct{})}
}

// ProcessIncoming records every word in line's stripped plain text.
func (w *IncomingWords) ProcessIncoming(line ansi.String) {
	for _, token := range AllTokens(line.Strip().PlainString()) {
		w.words[token] = struct{}{}
	}
}

// Suggest returns every recorded word with casing transformed to
// match params.WordToComplete()'s casing pattern. Order is unspecified
// (the underlying set carries no temporal or frequency signal); callers
// wanting a stable order should pass the result through Filter, which
// preserves input order.
func (w *IncomingWords) Suggest(params Params) []string {
	transform := MatchingWord(params.WordToComplete())
	out := make([]string, 0, len(w.words))
	for word := range w.words {
		out = append(out, transform.Transform(word))
	}
	return out
}
