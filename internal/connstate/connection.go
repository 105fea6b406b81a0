package connstate

import (
	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/completion"
	"github.com/wireline-mud/wireline/internal/sendproc"
	"github.com/wireline-mud/wireline/internal/textproc"
)

// Connection aggregates everything that lives for the duration of one
// connection: the incoming/outgoing text pipelines, the completion
// models fed from traffic on this connection, sent-text history, and
// prompt-group state. It is created on Connect and discarded on
// Disconnect; its matchers and line processors are reset by Clear,
// while completion models and history persist for the connection's
// whole life.
type Connection struct {
	ID string

	Incoming *textproc.Processor
	Outgoing *sendproc.Processor

	// SentCompletions is the bundled markov+recency source trained on
	// text this connection has sent.
	SentCompletions *completion.SentSource
	// IncomingCompletions tracks words seen in text received on this
	// connection.
	IncomingCompletions *completion.IncomingWords

	Sent *History[string]

	Prompts           *PromptGroups
	ActiveGroup       string
	AutoPromptEnabled bool

	// Outbox carries Outgoing values to the goroutine that owns this
	// connection's socket (internal/wireio), decoupling request
	// handling from transport I/O the way the registry lock is
	// decoupled from per-connection processing.
	Outbox chan Outgoing
}

// NewConnection builds a fresh per-connection aggregate with default
// capacities for history and completion models.
func NewConnection(id string) *Connection {
	c := &Connection{
		ID:                  id,
		Incoming:            textproc.New(),
		Outgoing:            sendproc.New(),
		SentCompletions:     completion.NewSentSource(),
		IncomingCompletions: completion.NewIncomingWords(),
		Sent:                NewDefaultHistory[string](),
		Prompts:             NewPromptGroups(),
		Outbox:              make(chan Outgoing, DefaultOutboxCapacity),
	}
	// Feeding the incoming-word completion model is wired as a line
	// processor rather than called out explicitly by whatever drives
	// Incoming.Process, mirroring the original's register_processors:
	// it runs on every full line the same way a trigger matcher would,
	// before matchers are evaluated.
	c.Incoming.RegisterProcessor(func(line ansi.String) ansi.String {
		c.RecordIncoming(line)
		return line
	})
	return c
}

// RecordSent feeds a line the user sent into history and the sent-text
// completion models.
func (c *Connection) RecordSent(line string) {
	c.Sent.Insert(line)
	c.SentCompletions.ProcessOutgoing(line)
}

// RecordIncoming feeds a line of styled text received on the
// connection into the incoming-word completion model.
func (c *Connection) RecordIncoming(line ansi.String) {
	c.IncomingCompletions.ProcessIncoming(line)
}

// Clear resets matchers and prompt groups, matching the original's
// per-connection `clear()`: completion models and history are
// untouched, since they're scoped to the connection's lifetime, not
// to whatever aliases/triggers/prompts happen to be registered.
func (c *Connection) Clear() {
	c.Incoming.Clear()
	c.Outgoing.Clear()
	c.Prompts.Clear()
	c.ActiveGroup = ""
}

// SetPromptContent implements textproc.PromptSink.
func (c *Connection) SetPromptContent(groupID string, index int, content ansi.String) {
	c.Prompts.GetOrCreate(groupID).SetIndex(index, content)
}

// SetActivePromptGroup implements textproc.PromptSink.
func (c *Connection) SetActivePromptGroup(groupID string) {
	c.ActiveGroup = groupID
}
