package completion

import "testing"

func TestMatchingWordCasing(t *testing.T) {
	title := MatchingWord("Grayskull")
	if title.first != transformUpper || title.rest != transformLower {
		t.Fatalf("got first=%v rest=%v", title.first, title.rest)
	}

	lower := MatchingWord("sword")
	if lower.first != transformLower || lower.rest != transformLower {
		t.Fatalf("got first=%v rest=%v", lower.first, lower.rest)
	}

	upper := MatchingWord("HONOR")
	if upper.first != transformUpper || upper.rest != transformUpper {
		t.Fatalf("got first=%v rest=%v", upper.first, upper.rest)
	}
}

func TestTransformAppliesCasing(t *testing.T) {
	transform := MatchingWord("Grayskull")
	if got := transform.Transform("adORa"); got != "Adora" {
		t.Fatalf("got %q", got)
	}
}
