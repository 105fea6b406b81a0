package completion

import "testing"

func TestSentSourceFeedsMarkovAndRecency(t *testing.T) {
	s := NewSentSource()
	s.ProcessOutgoing("swing sword at orc")
	s.ProcessOutgoing("swing sword at troll")

	got := s.Suggest(Params{LineToCursor: "swing "})
	found := false
	for _, w := range got {
		if w == "sword" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected markov-trained \"sword\" among suggestions, got %v", got)
	}
}

func TestSentSourceHonorsWordIndexSchedule(t *testing.T) {
	s := NewSentSource()
	s.ProcessOutgoing("one two three four five six seven")

	// The fifth word (index 4) is a 50/50 split between markov and
	// recency rather than an all-markov pick; exercise it without
	// relying on the random draw, just confirm it doesn't panic and
	// returns at least one candidate.
	got := s.Suggest(Params{LineToCursor: "one two three four "})
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}
}
