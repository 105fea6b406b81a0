package connstate

import (
	"testing"

	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/completion"
)

func TestNewConnectionPopulatesFields(t *testing.T) {
	c := NewConnection("conn-1")

	if c.ID != "conn-1" {
		t.Fatalf("got id %q", c.ID)
	}
	if c.Incoming == nil || c.Outgoing == nil {
		t.Fatalf("expected text pipelines to be initialized")
	}
	if c.SentCompletions == nil || c.IncomingCompletions == nil {
		t.Fatalf("expected completion models to be initialized")
	}
	if c.Sent == nil || c.Prompts == nil {
		t.Fatalf("expected history and prompt groups to be initialized")
	}
	if c.Outbox == nil || cap(c.Outbox) != DefaultOutboxCapacity {
		t.Fatalf("expected an initialized outbox, got %v", c.Outbox)
	}
	if c.ActiveGroup != "" || c.AutoPromptEnabled {
		t.Fatalf("expected zero-value activation state")
	}
}

func TestConnectionRecordSentFeedsHistoryAndCompletions(t *testing.T) {
	c := NewConnection("conn-1")

	c.RecordSent("cast fireball")

	if c.Sent.Len() != 1 {
		t.Fatalf("got len %d", c.Sent.Len())
	}
	if v, ok := c.Sent.At(0); !ok || v != "cast fireball" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestConnectionRecordIncomingFeedsCompletions(t *testing.T) {
	c := NewConnection("conn-1")

	c.RecordIncoming(ansi.FromString("You see a fireball."))

	found := false
	for _, w := range c.IncomingCompletions.Suggest(completion.Params{}) {
		if w == "fireball" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected \"fireball\" among incoming completions")
	}
}

func TestConnectionClearResetsMatchersAndPromptsNotHistory(t *testing.T) {
	c := NewConnection("conn-1")

	c.RecordSent("cast fireball")
	c.Prompts.GetOrCreate("status").SetIndex(0, ansi.FromString("100/100 HP"))
	c.SetActivePromptGroup("status")

	c.Clear()

	if c.ActiveGroup != "" {
		t.Fatalf("expected active group cleared, got %q", c.ActiveGroup)
	}
	if _, ok := c.Prompts.Get("status"); ok {
		t.Fatalf("expected prompt groups cleared")
	}
	if c.Sent.Len() != 1 {
		t.Fatalf("expected history untouched by Clear, got len %d", c.Sent.Len())
	}
}

func TestConnectionSetPromptContentAndActiveGroup(t *testing.T) {
	c := NewConnection("conn-1")

	c.SetPromptContent("status", 0, ansi.FromString("100/100 HP\r\n"))
	c.SetActivePromptGroup("status")

	if c.ActiveGroup != "status" {
		t.Fatalf("got %q", c.ActiveGroup)
	}
	group, ok := c.Prompts.Get("status")
	if !ok {
		t.Fatalf("expected group to exist")
	}
	content, ok := group.Get(0)
	if !ok || content.String() != "100/100 HP" {
		t.Fatalf("got %q, %v", content.String(), ok)
	}
}
