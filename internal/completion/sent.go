package completion

// bundledWeightsByIndex is the markov trie's max depth (5) reflected
// into the word-index selection schedule: for the first four words we
// trust the trie's structured-command suggestions fully; past that we
// suspect free text and give recency an equal vote.
var bundledWeightsByIndex = [][2]uint8{
	{100, 0},
	{100, 0},
	{100, 0},
	{100, 0},
	{50, 50},
}

// SentSource is the bundled completion source driving suggestions for
// text the user is composing to send: a Markov trie trained on what
// was sent before, blended with a recency set of recently seen words,
// weighted by word-index.
type SentSource struct {
	markov  *MarkovSource
	recency *RecencySource
	duplex  *DuplexSource
}

// NewSentSource builds the bundled markov+recency source with the
// engine's default word-index weighting schedule.
func NewSentSource() *SentSource {
	m := NewMarkovSource()
	r := NewRecencySource()
	return &SentSource{
		markov:  m,
		recency: r,
		duplex:  NewDuplexSource(m, r, NewWordIndexSelectorFactory(bundledWeightsByIndex)),
	}
}

// ProcessOutgoing records a line of text the user sent, feeding both
// the Markov trie and the recency set.
func (s *SentSource) ProcessOutgoing(line string) {
	s.markov.ProcessLine(line)
	s.recency.ProcessLine(line)
}

// Suggest blends the two sources per the word-index schedule.
func (s *SentSource) Suggest(params Params) []string {
	return s.duplex.Suggest(params)
}
