package completion

import "github.com/wireline-mud/wireline/internal/markov"

// MarkovSource suggests the next token given the tokens already typed
// on the line, ranked by the underlying trie's frequency order.
type MarkovSource struct {
	trie *markov.Trie
}

// NewMarkovSource wraps a fresh default-configured Markov trie.
func NewMarkovSource() *MarkovSource {
	return &MarkovSource{trie: markov.NewDefault()}
}

// ProcessLine records line's tokens as one sequence.
func (s *MarkovSource) ProcessLine(line string) {
	s.trie.AddSequence(AllTokens(line))
}

// Suggest returns the trie's next-token query for the tokens already
// present before the cursor.
func (s *MarkovSource) Suggest(params Params) []string {
	return s.trie.QueryNext(params.TokensBeforeCursor())
}
