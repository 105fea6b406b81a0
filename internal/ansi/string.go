// Package ansi implements the styled-string data model: an immutable,
// well-formed byte sequence carrying ANSI CSI sequences, a mutable
// accumulation buffer tolerant of partial UTF-8 and partial CSI at
// chunk boundaries, and the range-mapping arithmetic needed to keep
// matcher-driven edits from clobbering surrounding style bytes.
package ansi

import (
	"unicode/utf8"
)

// esc is the byte that introduces an escape sequence.
const esc = 0x1b

// String is an immutable byte sequence that is valid UTF-8 and contains
// only complete ANSI CSI sequences. It lazily computes and memoizes its
// stripped projection.
type String struct {
	raw      []byte
	stripped *Stripped
}

// New wraps raw bytes as a String. Callers must only pass bytes known
// to be valid UTF-8 with well-formed CSI sequences; Buffer.TakeValid is
// the usual source of such bytes.
func New(raw []byte) String {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return String{raw: cp}
}

// FromString wraps a Go string as a String.
func FromString(s string) String {
	return New([]byte(s))
}

// Empty returns the zero-length styled string.
func Empty() String { return String{} }

// Bytes returns the raw underlying bytes. Callers must not mutate them.
func (s String) Bytes() []byte { return s.raw }

// String returns the raw text as a Go string.
func (s String) String() string { return string(s.raw) }

// Len returns the number of raw bytes.
func (s String) Len() int { return len(s.raw) }

// Concat returns a new String consisting of s followed by other.
func (s String) Concat(other String) String {
	if len(s.raw) == 0 {
		return other
	}
	if len(other.raw) == 0 {
		return s
	}
	out := make([]byte, 0, len(s.raw)+len(other.raw))
	out = append(out, s.raw...)
	out = append(out, other.raw...)
	return String{raw: out}
}

// Slice returns the sub-string over the raw byte range [start, end).
func (s String) Slice(start, end int) String {
	return New(s.raw[start:end])
}

// Stripped is the plain-text projection of a String with all CSI
// sequences removed, plus the byte ranges (over the original) each
// removed sequence occupied.
type Stripped struct {
	plain       []byte
	original    []byte
	ansiRanges  []Range
	incomplete  bool
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

// Strip computes (and memoizes on s) the stripped projection.
func (s *String) Strip() *Stripped {
	if s.stripped != nil {
		return s.stripped
	}
	st := stripCSI(s.raw)
	s.stripped = &st
	return s.stripped
}

// StripImmutable computes the stripped projection without requiring a
// pointer receiver; used where the caller only has a value.
func StripImmutable(s String) *Stripped {
	st := stripCSI(s.raw)
	return &st
}

// Plain returns the plain (CSI-free) bytes.
func (st *Stripped) Plain() []byte { return st.plain }

// PlainString returns the plain (CSI-free) text.
func (st *Stripped) PlainString() string { return string(st.plain) }

// stripCSI scans valid UTF-8 plain text byte-by-byte, tracking CSI
// state: Normal -> MaybeCsi on ESC; MaybeCsi -> InCsi on '['; InCsi ->
// Normal on any final byte in 0x40..0x7E. Bytes belonging to a CSI
// sequence are excluded from the plain projection and recorded as a
// Range over the original bytes.
func stripCSI(raw []byte) Stripped {
	const (
		stateNormal = iota
		stateMaybeCSI
		stateInCSI
	)

	plain := make([]byte, 0, len(raw))
	var ranges []Range
	state := stateNormal
	rangeStart := 0

	i := 0
	for i < len(raw) {
		b := raw[i]
		switch state {
		case stateNormal:
			if b == esc {
				state = stateMaybeCSI
				rangeStart = i
				i++
				continue
			}
			plain = append(plain, b)
			i++
		case stateMaybeCSI:
			if b == '[' {
				state = stateInCSI
				i++
				continue
			}
			// Not a CSI after all; treat the ESC byte as plain (degrade
			// gracefully) and reprocess this byte as Normal.
			plain = append(plain, raw[rangeStart])
			state = stateNormal
			// do not advance i; reprocess b in Normal state
		case stateInCSI:
			if b >= 0x40 && b <= 0x7e {
				ranges = append(ranges, Range{Start: rangeStart, End: i + 1})
				state = stateNormal
				i++
				continue
			}
			// parameter/intermediate byte; stay in CSI
			i++
		}
	}

	incomplete := state != stateNormal

	return Stripped{
		plain:      plain,
		original:   raw,
		ansiRanges: ranges,
		incomplete: incomplete,
	}
}

// MapToOriginal maps a half-open byte range over the stripped plain
// text back to the corresponding range over the original bytes,
// expanding past any CSI range that intersects it.
func (st *Stripped) MapToOriginal(r Range) Range {
	start, end := r.Start, r.End
	for _, candidate := range st.ansiRanges {
		switch {
		case candidate.Start < start:
			start += candidate.Len()
			end += candidate.Len()
		case candidate.Start <= end:
			end += candidate.Len()
		default:
			// candidate lies entirely beyond end; ranges are in order,
			// so no further candidate can intersect.
			return Range{Start: start, End: end}
		}
	}
	return Range{Start: start, End: end}
}

// GetOriginal returns the styled String over the original bytes
// corresponding to the stripped plain-text range r.
func (st *Stripped) GetOriginal(r Range) String {
	mapped := st.MapToOriginal(r)
	return New(st.original[mapped.Start:mapped.End])
}

// Excise removes the original-byte range corresponding to the stripped
// plain range [p, q) from s, returning a new String that preserves
// surrounding style bytes. This is the sole mechanism consuming
// matchers use to shrink the subject they observed.
func Excise(s String, st *Stripped, plainRange Range) String {
	mapped := st.MapToOriginal(plainRange)
	before := New(s.raw[:mapped.Start])
	after := New(s.raw[mapped.End:])
	return before.Concat(after)
}

// validUTF8PrefixLen reports the number of leading bytes of b that
// form valid UTF-8.
func validUTF8PrefixLen(b []byte) int {
	if utf8.Valid(b) {
		return len(b)
	}
	// Find the first invalid byte using the standard decode loop,
	// mirroring utf8.DecodeRune's error reporting.
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return i
}
