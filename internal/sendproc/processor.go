// Package sendproc rewrites outgoing text (what the user typed) by
// running it through registered matcher+callback pairs to a bounded
// fixed point, the way aliases expand before being sent on the wire.
package sendproc

import (
	"errors"
	"fmt"

	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/match"
)

// maxIterations bounds the fixed-point rewrite: an alias that expands
// into text matching its own trigger would otherwise loop forever.
const maxIterations = 100

// ErrInfiniteLoop is returned when rewriting a line doesn't settle
// within maxIterations steps.
var ErrInfiniteLoop = errors.New("sendproc: exceeded maximum rewrite iterations without settling")

// ErrConsumingMatcherRejected is returned by RegisterMatcher when
// passed a matcher compiled with Options.Consume set: send-side
// matchers only ever observe and rewrite through their callback's
// return value, never excise.
var ErrConsumingMatcherRejected = errors.New("sendproc: matchers with Consume set cannot be registered here")

// Outcome is what a registered callback decides to do with its match.
type Outcome int

const (
	// Unchanged means the callback leaves the text as-is; the remaining
	// matchers of the pass still run against it, and a pass in which no
	// callback replaces or stops ends the rewrite with the (possibly
	// already-rewritten) text.
	Unchanged Outcome = iota
	// ReplaceWith splices Text into the line in place of the matched
	// span and starts another rewrite pass over the result.
	ReplaceWith
	// Stop discards the line entirely: Process returns (nil, nil).
	Stop
)

// MatchOutcome is a callback's verdict on one match.
type MatchOutcome struct {
	Result Outcome
	// Text carries the replacement for ReplaceWith; for Unchanged it
	// is unused (the original line, or whatever a prior step already
	// produced, is kept).
	Text string
}

// MatchHandler reacts to a matched line, deciding whether to leave it
// alone, rewrite it, or drop it.
type MatchHandler func(ctx match.Context) (MatchOutcome, error)

type registeredMatcher struct {
	matcher *match.Matcher
	onMatch MatchHandler
}

// Processor holds the registered alias-style matchers applied to
// outgoing text before it's sent.
type Processor struct {
	matchers []registeredMatcher
}

// New returns an empty Processor.
func New() *Processor {
	return &Processor{}
}

// RegisterMatcher adds a matcher + callback pair. Consuming matchers
// are rejected: there is nothing here for Consume to excise from,
// since every matcher sees the whole line on each pass.
func (p *Processor) RegisterMatcher(m *match.Matcher, onMatch MatchHandler) error {
	if m.Consumes() {
		return ErrConsumingMatcherRejected
	}
	p.matchers = append(p.matchers, registeredMatcher{matcher: m, onMatch: onMatch})
	return nil
}

// Clear removes every registered matcher.
func (p *Processor) Clear() {
	p.matchers = nil
}

type stepKind int

const (
	stepUnchanged stepKind = iota
	stepReplace
	stepStop
)

type step struct {
	kind stepKind
	text string
}

// Process rewrites input to a fixed point: each pass runs every
// matcher over the current text in registration order; a callback
// that returns ReplaceWith restarts the pass with the spliced result,
// a callback that returns Stop discards the line (nil, nil), and a
// pass where nothing replaces anything ends the rewrite. Exceeding
// maxIterations without settling is treated as a misconfigured alias
// loop.
func (p *Processor) Process(input string) (*string, error) {
	result := input

	for i := 0; i < maxIterations; i++ {
		s, err := p.processOnce(result)
		if err != nil {
			return nil, err
		}

		switch s.kind {
		case stepStop:
			return nil, nil
		case stepReplace:
			result = s.text
			continue
		case stepUnchanged:
			return &s.text, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrInfiniteLoop, input)
}

func (p *Processor) processOnce(s string) (step, error) {
	toMatch := ansi.FromString(s)

	for i := range p.matchers {
		rm := &p.matchers[i]

		result := rm.matcher.TryMatch(toMatch)
		if !result.Matched {
			continue
		}

		outcome, err := rm.onMatch(result.Context)
		if err != nil {
			return step{}, err
		}

		switch outcome.Result {
		case Stop:
			return step{kind: stepStop}, nil
		case ReplaceWith:
			replaced := splice(s, result.MatchRange, outcome.Text)
			return step{kind: stepReplace, text: replaced}, nil
		case Unchanged:
			// Keep evaluating the remaining matchers against the same
			// subject; this one had nothing to change.
			continue
		}
	}

	return step{kind: stepUnchanged, text: toMatch.Strip().PlainString()}, nil
}

func splice(full string, matched ansi.Range, replacement string) string {
	return full[:matched.Start] + replacement + full[matched.End:]
}
