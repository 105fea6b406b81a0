package recency

import "regexp"

var wordRegex = regexp.MustCompile(`\w+`)

// ProcessLine extracts every word-run from line and inserts each,
// lowercased, into the set. Grounded on RecencyCompletionSource::process_line.
func (s *Set) ProcessLine(line string) {
	s.InsertMany(wordRegex.FindAllString(line, -1))
}
