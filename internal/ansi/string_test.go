package ansi

import "testing"

func TestStripCSI(t *testing.T) {
	s := FromString("\x1b[32mColorful\x1b[m")
	stripped := s.Strip()
	if got := stripped.PlainString(); got != "Colorful" {
		t.Fatalf("got %q, want %q", got, "Colorful")
	}
}

func TestStripCSIOnlyStripsCSI(t *testing.T) {
	s := FromString("say ['anything']")
	stripped := s.Strip()
	if got := stripped.PlainString(); got != "say ['anything']" {
		t.Fatalf("got %q", got)
	}
}

func TestMapsBackToOriginalAtAnsi(t *testing.T) {
	s := FromString("\x1b[32mEverything\x1b[m is \x1b[32mFine\x1b[m")
	stripped := s.Strip()
	got := stripped.MapToOriginal(Range{0, 10})
	if got != (Range{0, 18}) {
		t.Fatalf("got %+v, want {0 18}", got)
	}
	original := stripped.GetOriginal(Range{0, 10})
	if original.String() != "\x1b[32mEverything\x1b[m" {
		t.Fatalf("got %q", original.String())
	}
}

func TestMapsBackToOriginalAfterAnsi(t *testing.T) {
	s := FromString("\x1b[32mEverything\x1b[m is \x1b[32mFine\x1b[m")
	stripped := s.Strip()
	got := stripped.MapToOriginal(Range{1, 10})
	if got != (Range{6, 18}) {
		t.Fatalf("got %+v, want {6 18}", got)
	}
	original := stripped.GetOriginal(Range{1, 10})
	if original.String() != "verything\x1b[m" {
		t.Fatalf("got %q", original.String())
	}
}

func TestFullyMapsBackToOriginal(t *testing.T) {
	s := FromString("\x1b[32mEverything\x1b[m is \x1b[32mFine\x1b[m")
	stripped := s.Strip()
	if got := stripped.PlainString(); got != "Everything is Fine" {
		t.Fatalf("got %q", got)
	}
	got := stripped.MapToOriginal(Range{0, 18})
	if got != (Range{0, 34}) {
		t.Fatalf("got %+v", got)
	}
	original := stripped.GetOriginal(Range{0, 18})
	want := "\x1b[32mEverything\x1b[m is \x1b[32mFine\x1b[m"
	if original.String() != want {
		t.Fatalf("got %q want %q", original.String(), want)
	}
}

func TestExcisePreservesSurroundingStyle(t *testing.T) {
	s := FromString("\x1b[32mHello world\x1b[m")
	stripped := s.Strip()
	// Excise "world" (plain range [6,11)) leaving "Hello " styled.
	out := Excise(s, stripped, Range{6, 11})
	gotStripped := StripImmutable(out)
	if got := gotStripped.PlainString(); got != "Hello " {
		t.Fatalf("got %q", got)
	}
}

func TestConcatEmpty(t *testing.T) {
	a := Empty()
	b := FromString("hi")
	if a.Concat(b).String() != "hi" {
		t.Fatal("expected concat with empty to return other unchanged")
	}
	if b.Concat(a).String() != "hi" {
		t.Fatal("expected concat with empty to return self unchanged")
	}
}
