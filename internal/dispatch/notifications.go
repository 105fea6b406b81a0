package dispatch

import (
	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/match"
)

// MatchedText carries both projections of a matched capture over the
// wire: the styled original and its stripped plain-text form.
type MatchedText struct {
	Plain string `json:"plain"`
	Ansi  string `json:"ansi"`
}

func matchedTextFrom(c match.Capture) MatchedText {
	return MatchedText{Plain: c.Plain, Ansi: c.Original.String()}
}

// MatchContext is match.Context translated to its wire shape: a
// trigger handler only ever sees captures, never the compiled
// matcher itself.
type MatchContext struct {
	Named          map[string]MatchedText `json:"named"`
	Indexed        map[int]MatchedText     `json:"indexed"`
	FullMatchRange [2]int                  `json:"full_match_range"`
}

func matchContextFrom(ctx match.Context, whole ansi.Range) MatchContext {
	named := make(map[string]MatchedText, len(ctx.Named))
	for k, v := range ctx.Named {
		named[k] = matchedTextFrom(v)
	}
	indexed := make(map[int]MatchedText, len(ctx.Indexed))
	for i, v := range ctx.Indexed {
		// Wire indexing is 1-based ($1, $2, ...), matching the
		// formatter/matcher hole grammar.
		indexed[i+1] = matchedTextFrom(v)
	}
	return MatchContext{
		Named:          named,
		Indexed:        indexed,
		FullMatchRange: [2]int{whole.Start, whole.End},
	}
}

// DaemonNotification is a fire-and-forget message about one
// connection's lifecycle or trigger activity.
type DaemonNotification struct {
	Type string `json:"type"`

	HandlerID HandlerID     `json:"handler_id,omitempty"`
	Context   *MatchContext `json:"context,omitempty"`

	Data *ExternalUIPayload `json:"data,omitempty"`
}

func ConnectedNotification() DaemonNotification {
	return DaemonNotification{Type: "Connected"}
}

func DisconnectedNotification() DaemonNotification {
	return DaemonNotification{Type: "Disconnected"}
}

func TriggerMatchedNotification(handlerID HandlerID, ctx MatchContext) DaemonNotification {
	return DaemonNotification{Type: "TriggerMatched", HandlerID: handlerID, Context: &ctx}
}

// ExternalUIPayload is the nested "data" object of an ExternalUI
// notification: a rendering instruction issued by the incoming text
// processor (line framing, styled text, or a locally-originated
// status/echo line), forwarded to whatever UI is attached to a
// connection without this package needing to know how it renders.
type ExternalUIPayload struct {
	Type string `json:"type"`

	Ansi string `json:"ansi,omitempty"`
	Text string `json:"text,omitempty"`
}

func externalUI(data ExternalUIPayload) DaemonNotification {
	return DaemonNotification{Type: "ExternalUI", Data: &data}
}

func NewLineNotification() DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "NewLine"})
}

func FinishLineNotification() DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "FinishLine"})
}

func ClearPartialLineNotification() DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "ClearPartialLine"})
}

func TextNotification(ansi string) DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "Text", Ansi: ansi})
}

func ConnectionStatusNotification(text string) DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "ConnectionStatus", Text: text})
}

func LocalSendNotification(text string) DaemonNotification {
	return externalUI(ExternalUIPayload{Type: "LocalSend", Text: text})
}
