package textproc

import (
	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/match"
)

// MatchHandler is invoked when a registered matcher wins the dispatch
// for a line. It receives the match's captures.
type MatchHandler func(ctx match.Context) error

// LineProcessor runs against every full line before matchers see it,
// for side effects such as updating completion models. It is handed
// the line and may return a replacement (e.g. stripped of a prefix);
// returning the line unchanged is always valid.
type LineProcessor func(line ansi.String) ansi.String

type registeredMatcher struct {
	id      any
	matcher *match.Matcher
	mode    MatcherMode
	onMatch MatchHandler
}

// Processor assembles telnet-framed byte chunks into lines, runs
// per-line side-effecting processors, dispatches the result through
// registered matchers in registration order (first match wins), and
// hands whatever remains to a ProcessorOutputReceiver.
type Processor struct {
	matchers    []registeredMatcher
	processors  []LineProcessor
	pendingLine ansi.Buffer
}

// New returns an empty Processor.
func New() *Processor {
	return &Processor{}
}

// RegisterMatcher adds a matcher to the dispatch chain. id is an
// opaque caller-assigned handle (a trigger/alias id, or a prompt
// group+index pair) kept only for the caller's own bookkeeping;
// Processor never inspects it.
func (p *Processor) RegisterMatcher(id any, m *match.Matcher, mode MatcherMode, onMatch MatchHandler) {
	p.matchers = append(p.matchers, registeredMatcher{id: id, matcher: m, mode: mode, onMatch: onMatch})
}

// RegisterProcessor adds a side-effecting per-line processor, run on
// every full line before matchers are evaluated.
func (p *Processor) RegisterProcessor(proc LineProcessor) {
	p.processors = append(p.processors, proc)
}

// Clear removes every registered matcher. Line processors are left in
// place; they are not scoped to aliases/triggers the way matchers are.
func (p *Processor) Clear() {
	p.matchers = nil
}

// Process feeds a chunk of incoming styled text through line assembly,
// per-line processing, matcher dispatch, and the receiver.
func (p *Processor) Process(text ansi.String, receiver ProcessorOutputReceiver) error {
	if err := receiver.BeginChunk(); err != nil {
		return err
	}

	remaining := text.Bytes()
	for len(remaining) > 0 {
		idx := indexByte(remaining, '\n')
		var hasFullLine bool
		var taken int
		if idx >= 0 {
			taken = idx + 1
			hasFullLine = true
		} else {
			taken = len(remaining)
			hasFullLine = false
		}

		p.pendingLine.Append(remaining[:taken])
		remaining = remaining[taken:]

		if err := p.processPendingLine(hasFullLine, receiver); err != nil {
			return err
		}
	}

	return receiver.EndChunk()
}

// FlushAsPrompt is invoked when the telnet framer signals an
// end-of-prompt marker (IAC GA / IAC EOR): whatever partial line is
// pending is processed immediately as though it were terminated,
// without waiting for a trailing newline that may never arrive.
func (p *Processor) FlushAsPrompt(receiver ProcessorOutputReceiver) error {
	if p.pendingLine.Len() == 0 || p.pendingLine.HasIncompleteTrailer() {
		// An unterminated ANSI code or multi-byte rune still straddles
		// the chunk boundary; treat this as not a real prompt yet.
		return nil
	}
	if err := p.processPendingLine(false, receiver); err != nil {
		return err
	}
	// The prompt is finished: whatever text follows starts a new line,
	// even if no newline byte ever arrives for this one.
	p.pendingLine.Reset()
	return nil
}

func (p *Processor) processPendingLine(hasFullLine bool, receiver ProcessorOutputReceiver) error {
	raw := p.pendingLine.Bytes()
	if len(raw) > 0 && raw[0] == '\r' {
		trimmed := make([]byte, len(raw)-1)
		copy(trimmed, raw[1:])
		p.pendingLine.Reset()
		p.pendingLine.Append(trimmed)
		raw = p.pendingLine.Bytes()
	}

	if p.pendingLine.HasIncompleteTrailer() {
		// Wait for the next chunk rather than split an ANSI code or a
		// multi-byte rune across lines.
		return nil
	}

	if err := receiver.ClearPartialLine(); err != nil {
		return err
	}

	var mode MatcherMode
	var toMatch ansi.String

	if hasFullLine {
		full := p.pendingLine.TakeValid()
		full = p.performProcessing(full)
		mode = FullLine
		toMatch = full
	} else {
		mode = PartialLine
		toMatch = ansi.New(append([]byte(nil), raw...))
	}

	toPrint, err := p.performMatch(toMatch, mode)
	if err != nil {
		return err
	}

	if toPrint != nil {
		if err := receiver.Text(*toPrint); err != nil {
			return err
		}
		if hasFullLine {
			if err := receiver.NewLine(); err != nil {
				return err
			}
		}
	}

	return receiver.FinishLine()
}

// ResetPending discards whatever partial line is currently pending,
// without running it through matchers or the receiver. Callers use
// this when the user sends a line of their own: most MUDs reprint an
// echoed prompt rather than continuing whatever was pending, so the
// stale partial line should not survive to be merged with it.
func (p *Processor) ResetPending() {
	p.pendingLine.Reset()
}

func (p *Processor) performProcessing(line ansi.String) ansi.String {
	for _, proc := range p.processors {
		line = proc(line)
	}
	return line
}

// performMatch dispatches subject through the registered matchers in
// order; the first one to match wins, its handler runs, and whatever
// it leaves as "remaining" (the excised subject when it consumes, the
// untouched subject otherwise) is what gets printed. A matcher that
// only observes does not suppress the line.
func (p *Processor) performMatch(subject ansi.String, mode MatcherMode) (*ansi.String, error) {
	for i := range p.matchers {
		rm := &p.matchers[i]
		if mode < rm.mode {
			continue
		}

		result := rm.matcher.TryMatch(subject)
		if !result.Matched {
			continue
		}

		if err := rm.onMatch(result.Context); err != nil {
			return nil, err
		}
		remaining := result.Remaining
		return &remaining, nil
	}

	return &subject, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
