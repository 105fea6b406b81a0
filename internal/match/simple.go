package match

import (
	"regexp"
	"strconv"
	"strings"
)

// varRegex finds `$123`, `$word`, and `${word}` holes in a simple
// pattern source. A literal `$` is escaped by doubling it (`$$`).
var varRegex = regexp.MustCompile(`\$(\d+|\w+|(?:\{\w+\}))`)

// BuildSimplePattern compiles a "simple" alias/trigger pattern into a
// regexp source string. `$N` holes (strictly increasing N across the
// pattern) become unnamed capture groups; `$name`/`${name}` holes
// become `(?P<name>...)` named groups; everything else is escaped
// literal text. A leading `^` anchors the whole pattern to line start.
func BuildSimplePattern(source string) (string, error) {
	var pattern strings.Builder

	if strings.HasPrefix(source, "^") {
		source = source[1:]
		pattern.WriteByte('^')
	}

	lastVarEnd := 0
	haveLastIndex := false
	lastIndex := 0

	matches := varRegex.FindAllStringSubmatchIndex(source, -1)
	for _, m := range matches {
		start, end := m[0], m[1]

		// Escaped variable: a literal "$" immediately precedes the hole
		// (e.g. "$$1" keeps the '$'). Skip it, leaving the extra '$' as
		// plain text to be escaped normally.
		if start > 0 && source[start-1:start] == "$" {
			continue
		}

		if start > lastVarEnd {
			pattern.WriteString(regexp.QuoteMeta(source[lastVarEnd:start]))
		}

		label := source[m[2]:m[3]]
		if asIndex, err := strconv.Atoi(label); err == nil {
			if haveLastIndex && asIndex <= lastIndex {
				return "", ErrOutOfOrderIndexes
			}
			lastIndex = asIndex
			haveLastIndex = true
			pattern.WriteString("(.+)")
		} else {
			name := label
			if strings.HasPrefix(name, "{") {
				name = name[1 : len(name)-1]
			}
			pattern.WriteString("(?P<")
			pattern.WriteString(name)
			pattern.WriteString(">.+)")
		}

		lastVarEnd = end
	}

	if lastVarEnd < len(source) {
		pattern.WriteString(regexp.QuoteMeta(source[lastVarEnd:]))
	}

	return pattern.String(), nil
}

// VarHole describes one `$`-hole found in a simple pattern or
// formatter source, by byte offsets into that source. An Escaped hole
// (source had "$$" before the label) is not a real var reference —
// Literal holds the single-dollar text it collapses to.
type VarHole struct {
	Start, End int
	// Index is the hole's 1-based group number, valid when IsIndex.
	Index int
	// Name is the hole's name, valid when !IsIndex.
	Name    string
	IsIndex bool
	Escaped bool
	Literal string
}

// FindVarHoles returns every `$N`/`$name`/`${name}` hole in source, in
// order, using the same grammar BuildSimplePattern compiles against,
// including escaped ("$$...") ones. It's shared by the formatter
// package, which expands holes against a match.Context instead of
// turning them into regex groups.
func FindVarHoles(source string) []VarHole {
	var holes []VarHole

	for _, m := range varRegex.FindAllStringSubmatchIndex(source, -1) {
		start, end := m[0], m[1]
		label := source[m[2]:m[3]]

		if start > 0 && source[start-1:start] == "$" {
			holes = append(holes, VarHole{
				Start: start - 1, End: end,
				Escaped: true,
				Literal: "$" + label,
			})
			continue
		}

		if asIndex, err := strconv.Atoi(label); err == nil {
			holes = append(holes, VarHole{Start: start, End: end, Index: asIndex, IsIndex: true})
			continue
		}

		name := label
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		holes = append(holes, VarHole{Start: start, End: end, Name: name})
	}

	return holes
}
