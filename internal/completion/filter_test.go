package completion

import "testing"

func TestCandidateMatchesEmptyWord(t *testing.T) {
	if !CandidateMatches("", "alpastor") {
		t.Fatal("expected empty word to accept everything")
	}
}

func TestCandidateMatchesOrderedSubsequence(t *testing.T) {
	if !CandidateMatches("ap", "alpastor") {
		t.Fatal("expected \"ap\" to match \"alpastor\"")
	}
	if !CandidateMatches("ap", "andpinto") {
		t.Fatal("expected \"ap\" to match \"andpinto\"")
	}
	if CandidateMatches("ap", "plus ultra") {
		t.Fatal("expected \"ap\" to reject \"plus ultra\" (out of order)")
	}
}

func TestCandidateMatchesCaseInsensitive(t *testing.T) {
	if !CandidateMatches("Ap", "alpastor") {
		t.Fatal("expected case-insensitive match")
	}
	if CandidateMatches("Ap", "plus ultra") {
		t.Fatal("expected \"Ap\" to reject \"plus ultra\"")
	}
}
