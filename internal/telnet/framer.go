package telnet

// FrameKind is the high-level classification a Framer emits downstream,
// collapsing the parser's TelnetEvent stream into the four shapes the
// rest of the engine dispatches on.
type FrameKind int

const (
	// FrameData carries plain text bytes received from the peer.
	FrameData FrameKind = iota
	// FrameEvent carries a subnegotiation payload for a negotiated
	// option (TTYPE, NAWS, GMCP, MSSP, ...). Option identifies which.
	FrameEvent
	// FrameEndOfPrompt marks a GA or EOR: the peer considers everything
	// received so far to be an unterminated prompt line.
	FrameEndOfPrompt
	// FrameNop is a telnet NOP, typically a keepalive; carries no data.
	FrameNop
)

// Frame is one unit of the framer's output stream.
type Frame struct {
	Kind   FrameKind
	Option byte   // set for FrameEvent
	Data   []byte // set for FrameData and FrameEvent
}

// Framer wraps a Parser and reduces its raw TelnetEvent stream to the
// Data/Event/EndOfPrompt/Nop contract the incoming text processor
// consumes. Outbound negotiation responses generated by the parser
// (option negotiation side effects) are collected as raw bytes in
// Outbound so the caller can write them back to the connection.
type Framer struct {
	parser *Parser
	// Outbound accumulates raw bytes the parser wants written back to
	// the peer (negotiation replies) produced by the most recent Feed.
	Outbound []byte
}

// NewFramer constructs a Framer with the given option compatibility
// table (see DefaultCompatibility for the MUD-client defaults).
func NewFramer(table CompatibilityTable) *Framer {
	return &Framer{parser: NewParser(table)}
}

// Feed ingests a chunk of raw network bytes and returns the resulting
// frames in order. Any negotiation replies the parser wants to send are
// appended to f.Outbound for the caller to flush after draining frames.
func (f *Framer) Feed(chunk []byte) []Frame {
	f.Outbound = f.Outbound[:0]
	events := f.parser.Receive(chunk)

	var frames []Frame
	for _, ev := range events {
		switch ev.Kind {
		case TelnetEventDataReceive:
			frames = append(frames, Frame{Kind: FrameData, Data: ev.Data})
		case TelnetEventSubnegotiation:
			frames = append(frames, Frame{Kind: FrameEvent, Option: ev.Option, Data: ev.Data})
		case TelnetEventIAC:
			switch ev.Command {
			case CmdGA, CmdEOR:
				frames = append(frames, Frame{Kind: FrameEndOfPrompt})
			case CmdNOP:
				frames = append(frames, Frame{Kind: FrameNop})
			}
		case TelnetEventNegotiation:
			// Side-effect-only: negotiation state already updated by the
			// parser. No downstream frame; the client may still want to
			// react (e.g. send NAWS after WILL NAWS is accepted), which
			// it does by inspecting f.Options directly.
		case TelnetEventDataSend:
			f.Outbound = append(f.Outbound, ev.Data...)
		case TelnetEventDecompressImmediate:
			// MCCP2/3 decompression is out of scope; pass the remaining
			// bytes through as data rather than silently dropping them.
			frames = append(frames, Frame{Kind: FrameData, Data: ev.Data})
		}
	}
	return frames
}

// Options exposes the underlying compatibility table for callers that
// need to inspect or drive negotiation directly (e.g. sending NAWS
// updates once the option is enabled).
func (f *Framer) Options() *CompatibilityTable {
	return &f.parser.Options
}

// Will, Wont, Do, Dont, and Subnegotiation proxy to the underlying
// parser and, when they produce an event, append its bytes to Outbound
// so a single Flush drains everything generated since the last Feed.
func (f *Framer) Will(option byte) {
	if ev := f.parser.Will(option); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

func (f *Framer) Wont(option byte) {
	if ev := f.parser.Wont(option); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

func (f *Framer) Do(option byte) {
	if ev := f.parser.Do(option); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

func (f *Framer) Dont(option byte) {
	if ev := f.parser.Dont(option); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

func (f *Framer) SubnegotiationText(option byte, text string) {
	if ev := f.parser.SubnegotiationText(option, text); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

// SubnegotiationRaw sends a subnegotiation reply carrying arbitrary
// bytes (e.g. a leading IS/SEND command byte ahead of a TTYPE or NAWS
// payload), rather than SubnegotiationText's bare-string convenience.
func (f *Framer) SubnegotiationRaw(option byte, data []byte) {
	if ev := f.parser.Subnegotiation(option, data); ev != nil {
		f.Outbound = append(f.Outbound, ev.Data...)
	}
}

// Flush returns and clears the accumulated outbound negotiation bytes.
func (f *Framer) Flush() []byte {
	out := f.Outbound
	f.Outbound = nil
	return out
}

// EncodeLine prepares a line of user input for transmission: CRLF
// termination and IAC doubling.
func EncodeLine(text string) []byte {
	return SendText(text).Data
}
