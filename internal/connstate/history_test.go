package connstate

import "testing"

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	h := NewHistory[string](2)
	h.Insert("First")
	h.Insert("Second")
	h.Insert("Third")

	if h.Len() != 2 {
		t.Fatalf("got len %d", h.Len())
	}
	entries := h.Entries()
	want := []string{"Second", "Third"}
	for i, w := range want {
		if entries[i] != w {
			t.Fatalf("got %v want %v", entries, want)
		}
	}
}

func TestHistoryReinsertionMovesToBack(t *testing.T) {
	h := NewDefaultHistory[string]()
	h.InsertMany([]string{"First", "Second", "Third"})
	h.Insert("First")

	entries := h.Entries()
	want := []string{"Second", "Third", "First"}
	for i, w := range want {
		if entries[i] != w {
			t.Fatalf("got %v want %v", entries, want)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("got len %d", h.Len())
	}
}

func TestHistoryVersionBumpsOncePerCall(t *testing.T) {
	h := NewDefaultHistory[string]()
	if h.Version() != 0 {
		t.Fatalf("got version %d", h.Version())
	}
	h.InsertMany([]string{"First", "Second"})
	if h.Version() != 1 {
		t.Fatalf("got version %d", h.Version())
	}
	h.Insert("Third")
	if h.Version() != 2 {
		t.Fatalf("got version %d", h.Version())
	}
}

func TestHistoryAt(t *testing.T) {
	h := NewDefaultHistory[string]()
	h.InsertMany([]string{"First", "Second"})

	if v, ok := h.At(0); !ok || v != "First" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if v, ok := h.At(1); !ok || v != "Second" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if _, ok := h.At(2); ok {
		t.Fatalf("expected no entry at offset 2")
	}
	if _, ok := h.At(-1); ok {
		t.Fatalf("expected no entry at offset -1")
	}
}
