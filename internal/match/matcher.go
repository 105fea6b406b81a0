// Package match implements the declarative matcher compiler and
// engine: simple `$name`/`$N` patterns and raw regex patterns compiled
// to a shared regexp-backed Matcher, run against styled text with
// named and indexed captures resolved over both the plain and the
// original (styled) projections.
package match

import (
	"fmt"
	"regexp"

	"github.com/wireline-mud/wireline/internal/ansi"
)

// Kind selects how Source is compiled.
type Kind int

const (
	// KindSimple compiles Source through BuildSimplePattern first.
	KindSimple Kind = iota
	// KindRegex compiles Source directly as a Go regexp.
	KindRegex
)

// Options controls matcher behavior independent of the pattern.
type Options struct {
	// Consume, when true, excises the matched span from the subject
	// once matched, so later matchers in the same dispatch pass see
	// only what remains.
	Consume bool
}

// Spec is the declarative, wire-friendly description of a matcher,
// as registered over the request protocol.
type Spec struct {
	Kind    Kind
	Source  string
	Options Options
}

// Matcher is a compiled pattern ready to run against styled text.
type Matcher struct {
	options Options
	pattern *regexp.Regexp
	// source is retained for cache keying and diagnostics.
	source string
}

// Compile builds a Matcher from a Spec. For KindSimple, Source is
// first translated via BuildSimplePattern; for KindRegex, Source is
// used as-is. Both paths ultimately call regexp.Compile.
func Compile(spec Spec) (*Matcher, error) {
	patternSrc := spec.Source
	if spec.Kind == KindSimple {
		translated, err := BuildSimplePattern(spec.Source)
		if err != nil {
			return nil, err
		}
		patternSrc = translated
	} else if spec.Kind != KindRegex {
		return nil, ErrUnsupportedKind
	}

	re, err := regexp.Compile(patternSrc)
	if err != nil {
		return nil, fmt.Errorf("match: compile %q: %w", patternSrc, err)
	}

	return &Matcher{options: spec.Options, pattern: re, source: patternSrc}, nil
}

// Consumes reports whether this matcher excises its match from the
// subject (Options.Consume), for callers that must reject consuming
// matchers in a context where only observation makes sense.
func (m *Matcher) Consumes() bool { return m.options.Consume }

// Capture is one matched group, carrying both the plain text and the
// original styled slice it corresponds to.
type Capture struct {
	Plain    string
	Original ansi.String
}

// Context holds every capture produced by a successful match: indexed
// captures in order (1-based group numbers, "$1" -> Indexed[0]) and
// named captures by name.
type Context struct {
	Indexed []Capture
	Named   map[string]Capture
	// Whole is the full matched span, plain and original.
	Whole Capture
}

// Result is the outcome of running a Matcher against a subject.
type Result struct {
	// Matched reports whether the pattern matched at all.
	Matched bool
	// Consumed reports whether the match was excised from Remaining
	// (only possible when Matched is true and the matcher's Options.Consume
	// is set).
	Consumed bool
	// Remaining is the subject with the matched span excised, when
	// Consumed is true; otherwise it is the original subject unchanged.
	Remaining ansi.String
	// Context carries the captures, valid only when Matched is true.
	Context Context
	// MatchRange is the whole match's span in subject's stripped plain
	// text (byte offsets), valid only when Matched is true. Callers
	// that need to splice a replacement into the plain text themselves
	// (rather than relying on Consume's excise) use this directly.
	MatchRange ansi.Range
}

// TryMatch runs the pattern against subject's stripped (plain-text)
// projection. On a match it builds a Context mapping each capture back
// to its original styled slice via the stripped projection's range
// mapping. When the matcher consumes, the matched span is excised from
// the returned Remaining.
func (m *Matcher) TryMatch(subject ansi.String) Result {
	stripped := subject.Strip()
	plain := stripped.PlainString()

	loc := m.pattern.FindStringSubmatchIndex(plain)
	if loc == nil {
		return Result{Matched: false, Remaining: subject}
	}

	names := m.pattern.SubexpNames()
	ctx := Context{Named: map[string]Capture{}}
	ctx.Whole = captureAt(stripped, plain, loc, 0)

	for i := 1; i*2 < len(loc); i++ {
		if loc[i*2] < 0 {
			continue
		}
		cap := captureAt(stripped, plain, loc, i)
		if i < len(names) && names[i] != "" {
			ctx.Named[names[i]] = cap
		} else {
			ctx.Indexed = append(ctx.Indexed, cap)
		}
	}

	result := Result{
		Matched:    true,
		Remaining:  subject,
		Context:    ctx,
		MatchRange: ansi.Range{Start: loc[0], End: loc[1]},
	}

	if m.options.Consume {
		plainRange := ansi.Range{Start: loc[0], End: loc[1]}
		result.Remaining = ansi.Excise(subject, stripped, plainRange)
		result.Consumed = true
	}

	return result
}

func captureAt(stripped *ansi.Stripped, plain string, loc []int, group int) Capture {
	start, end := loc[group*2], loc[group*2+1]
	original := stripped.GetOriginal(ansi.Range{Start: start, End: end})
	return Capture{Plain: plain[start:end], Original: original}
}
