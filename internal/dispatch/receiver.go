package dispatch

import (
	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/textproc"
)

// WireReceiver adapts a ConnectionChannel into a
// textproc.ProcessorOutputReceiver: every line-framing and content hook
// the incoming processor calls becomes an ExternalUI notification on
// that connection, so a client never needs to know the processor
// exists. internal/wireio builds one of these per connection and hands
// it to Processor.Process/FlushAsPrompt.
type WireReceiver struct {
	Channel ConnectionChannel
}

func (r WireReceiver) BeginChunk() error { return nil }
func (r WireReceiver) EndChunk() error   { return nil }

func (r WireReceiver) NewLine() error {
	r.Channel.Notify(NewLineNotification())
	return nil
}

func (r WireReceiver) FinishLine() error {
	r.Channel.Notify(FinishLineNotification())
	return nil
}

func (r WireReceiver) ClearPartialLine() error {
	r.Channel.Notify(ClearPartialLineNotification())
	return nil
}

func (r WireReceiver) Text(text ansi.String) error {
	r.Channel.Notify(TextNotification(text.String()))
	return nil
}

func (r WireReceiver) System(message textproc.SystemMessage) error {
	r.Channel.Notify(ConnectionStatusNotification(message.ConnectionStatus))
	return nil
}

// Notification forwards a processor-initiated notification verbatim.
// Nothing currently routes a DaemonNotification through this path:
// trigger matches are notified directly by their match handler, and
// internal/wireio sends LocalSend straight on the connection channel.
// The method exists because textproc.ProcessorOutputReceiver requires it.
func (r WireReceiver) Notification(n textproc.Notification) error {
	if dn, ok := n.(DaemonNotification); ok {
		r.Channel.Notify(dn)
	}
	return nil
}
