package dispatch

import "testing"

func TestRequestIDGeneratorStartsAtZeroAndIncrements(t *testing.T) {
	g := &RequestIDGenerator{}
	if got := g.Next(); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := g.Next(); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if got := g.Next(); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestRequestIDGeneratorConcurrentNextNeverRepeats(t *testing.T) {
	g := &RequestIDGenerator{}
	const n = 200
	results := make(chan RequestID, n)

	for i := 0; i < n; i++ {
		go func() { results <- g.Next() }()
	}

	seen := make(map[RequestID]bool, n)
	for i := 0; i < n; i++ {
		id := <-results
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}
}
