package textproc

import "github.com/wireline-mud/wireline/internal/ansi"

// MatcherMode restricts a registered matcher to full lines only, or
// lets it also see a line still being assembled. PartialLine < FullLine
// so a full line is eligible for both kinds of matcher.
type MatcherMode int

const (
	PartialLine MatcherMode = iota
	FullLine
)

// SystemMessage carries processor-internal status unrelated to text
// received from the remote end, such as a connection state change.
type SystemMessage struct {
	ConnectionStatus string
}

// Notification is a processor-initiated, out-of-band event destined
// for whatever layer is watching the connection (a registered trigger
// firing, for instance). Its concrete shape belongs to the dispatcher
// that owns the notification protocol, not to this package, so it is
// carried opaquely here to avoid a dependency cycle.
type Notification any

// ProcessorOutputReceiver is how a TextProcessor hands its output
// back to the caller: framing hooks around a chunk of input, line
// boundaries, and the three kinds of content a line can produce.
type ProcessorOutputReceiver interface {
	BeginChunk() error
	EndChunk() error

	NewLine() error
	FinishLine() error

	// ClearPartialLine is called before emitting anything for a line,
	// telling the receiver to erase whatever partial rendering of that
	// same line it may have already written.
	ClearPartialLine() error

	Text(text ansi.String) error
	System(message SystemMessage) error
	Notification(notification Notification) error
}

// NopReceiver provides no-op BeginChunk/EndChunk so embedders only
// need to implement the methods they care about, mirroring the
// original's default trait methods.
type NopReceiver struct{}

func (NopReceiver) BeginChunk() error { return nil }
func (NopReceiver) EndChunk() error   { return nil }
