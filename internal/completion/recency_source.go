package completion

import "github.com/wireline-mud/wireline/internal/recency"

// RecencySource suggests recently seen words, most recent first,
// regardless of cursor position.
type RecencySource struct {
	set *recency.Set
}

// NewRecencySource wraps a fresh default-capacity recency set.
func NewRecencySource() *RecencySource {
	return &RecencySource{set: recency.NewDefault()}
}

// ProcessLine records line's words.
func (s *RecencySource) ProcessLine(line string) {
	s.set.ProcessLine(line)
}

// Suggest returns every recorded word, newest first. The cursor
// position is irrelevant to a recency source.
func (s *RecencySource) Suggest(_ Params) []string {
	return s.set.Newest()
}
