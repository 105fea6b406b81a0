package completion

import (
	"reflect"
	"testing"
)

func TestAllTokensEmpty(t *testing.T) {
	if got := AllTokens(""); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := SignificantTokens(""); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestAllTokensSymbolsOnly(t *testing.T) {
	if got := AllTokens("( *$ ]["); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestAllTokensWords(t *testing.T) {
	got := AllTokens("You can't (take)")
	want := []string{"you", "can't", "take"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSignificantTokensDropsShortWords(t *testing.T) {
	got := AllTokens("it's no big deal")
	want := []string{"it's", "no", "big", "deal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	sig := SignificantTokens("it's no big deal")
	wantSig := []string{"big", "deal"}
	if !reflect.DeepEqual(sig, wantSig) {
		t.Fatalf("got %v want %v", sig, wantSig)
	}
}
