package dispatch

import (
	"fmt"

	"github.com/wireline-mud/wireline/internal/connstate"
	"github.com/wireline-mud/wireline/internal/match"
)

// MatcherSpec is the wire shape of a declarative matcher, as sent by
// RegisterAlias/RegisterTrigger/RegisterPrompt.
type MatcherSpec struct {
	Kind    string `json:"kind"`
	Source  string `json:"source"`
	Consume bool   `json:"consume"`
}

// toSpec translates the wire MatcherSpec into match.Spec, rejecting an
// unknown "kind" before it reaches the matcher compiler.
func (m MatcherSpec) toSpec() (match.Spec, error) {
	var kind match.Kind
	switch m.Kind {
	case "simple", "":
		kind = match.KindSimple
	case "regex":
		kind = match.KindRegex
	default:
		return match.Spec{}, fmt.Errorf("dispatch: unknown matcher kind %q", m.Kind)
	}
	return match.Spec{
		Kind:    kind,
		Source:  m.Source,
		Options: match.Options{Consume: m.Consume},
	}, nil
}

// Compile translates the wire MatcherSpec into match.Spec and compiles
// it through compiler (reusing its pattern cache), so a bad "kind" or
// pattern is rejected at registration time rather than surfacing as a
// mysterious non-match later.
func (m MatcherSpec) Compile(compiler *match.Compiler) (*match.Matcher, error) {
	spec, err := m.toSpec()
	if err != nil {
		return nil, err
	}
	return compiler.Compile(spec)
}

// ConnectionConfig carries per-connection settings that may be applied
// at Connect time or updated later via ConfigureConnection.
type ConnectionConfig struct {
	AutoPrompts *bool `json:"auto_prompts,omitempty"`
}

// Apply mutates conn per whichever fields are set.
func (c ConnectionConfig) Apply(conn *connstate.Connection) {
	if c.AutoPrompts != nil {
		conn.AutoPromptEnabled = *c.AutoPrompts
	}
}

// AliasReplacement selects how a registered alias produces its
// replacement text: either a round trip to a client-registered
// handler, or a formatter pattern resolved locally.
type AliasReplacement struct {
	HandlerID          *HandlerID `json:"handler_id,omitempty"`
	ReplacementPattern *string    `json:"replacement_pattern,omitempty"`
}

// Connect asks the daemon to dial a MUD and register a new
// connection. Replay-from-dump (the original's `replay` field) is out
// of scope; connecting always dials out.
type Connect struct {
	URI    string `json:"uri"`
	Config ConnectionConfig
}

// Send is a line the user typed, destined for the connection's
// outgoing processor and then the wire, unless Persist is false, in
// which case it's transmitted but never recorded into sent history
// (e.g. for a password prompt).
type Send struct {
	ConnectionID ConnectionID `json:"connection_id"`
	Text         string       `json:"text"`
	Persist      *bool        `json:"persist,omitempty"`
}

func (s Send) persist() bool { return s.Persist == nil || *s.Persist }

// ClientRequest is every request variant expecting exactly one
// Response. Each concrete type below implements it as a marker.
type ClientRequest interface{ clientRequest() }

type ConnectRequest struct {
	Connect
}

type DisconnectRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
}

type SendRequest struct{ Send }

type ConfigureConnectionRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	ConnectionConfig
}

type GetHistoryRequest struct {
	ConnectionID ConnectionID             `json:"connection_id"`
	Limit        int                      `json:"limit"`
	Cursor       *connstate.HistoryCursor `json:"cursor,omitempty"`
}

type ScrollHistoryRequest struct {
	ConnectionID ConnectionID             `json:"connection_id"`
	Direction    string                   `json:"direction"`
	Content      string                   `json:"content"`
	Cursor       *connstate.HistoryCursor `json:"cursor,omitempty"`
}

type CompleteComposerRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	LineToCursor string       `json:"line_to_cursor"`
}

type RegisterAliasRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	Matcher      MatcherSpec  `json:"matcher"`
	AliasReplacement
}

type RegisterTriggerRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	Matcher      MatcherSpec  `json:"matcher"`
	HandlerID    HandlerID    `json:"handler_id"`
}

type RegisterPromptRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	Matcher      MatcherSpec  `json:"matcher"`
	GroupID      GroupID      `json:"group_id"`
	PromptIndex  int          `json:"prompt_index"`
}

type SetPromptContentRequest struct {
	ConnectionID   ConnectionID `json:"connection_id"`
	GroupID        GroupID      `json:"group_id"`
	PromptIndex    int          `json:"prompt_index"`
	Content        string       `json:"content"`
	SetGroupActive *bool        `json:"set_group_active,omitempty"`
}

func (r SetPromptContentRequest) activatesGroup() bool {
	return r.SetGroupActive == nil || *r.SetGroupActive
}

type SetActivePromptGroupRequest struct {
	ConnectionID ConnectionID `json:"connection_id"`
	GroupID      GroupID      `json:"group_id"`
}

func (ConnectRequest) clientRequest()              {}
func (DisconnectRequest) clientRequest()            {}
func (SendRequest) clientRequest()                  {}
func (ConfigureConnectionRequest) clientRequest()    {}
func (GetHistoryRequest) clientRequest()             {}
func (ScrollHistoryRequest) clientRequest()           {}
func (CompleteComposerRequest) clientRequest()        {}
func (RegisterAliasRequest) clientRequest()           {}
func (RegisterTriggerRequest) clientRequest()         {}
func (RegisterPromptRequest) clientRequest()          {}
func (SetPromptContentRequest) clientRequest()        {}
func (SetActivePromptGroupRequest) clientRequest()    {}

// ClientNotification is every fire-and-forget request variant: no
// Response is ever sent back.
type ClientNotification interface{ clientNotification() }

type QuitNotification struct{}

type WindowSizeNotification struct {
	ConnectionID ConnectionID `json:"connection_id"`
	Width        uint16       `json:"width"`
	Height       uint16       `json:"height"`
}

type ClearNotification struct {
	ConnectionID ConnectionID `json:"connection_id"`
}

func (QuitNotification) clientNotification()       {}
func (WindowSizeNotification) clientNotification() {}
func (ClearNotification) clientNotification()      {}
