// Package formatters expands a small `$name`/`$N` template language
// against a matcher's captures, for alias replacements that don't need
// a full round-trip to a registered handler.
package formatters

import (
	"strings"

	"github.com/wireline-mud/wireline/internal/match"
)

// Formatter is a compiled replacement template.
type Formatter struct {
	source string
}

// Compile validates source against the same hole grammar
// match.BuildSimplePattern uses ($$ escaping, $N/$name/${name} holes)
// and returns a Formatter ready to format captures.
func Compile(source string) (*Formatter, error) {
	if _, err := match.BuildSimplePattern(source); err != nil {
		return nil, err
	}
	return &Formatter{source: source}, nil
}

// Format expands every hole in the template against ctx. An indexed
// hole ($1, $2, ...) looks up ctx.Indexed[index-1]; a named hole looks
// up ctx.Named[name]. A hole with no corresponding capture expands to
// the empty string, matching a trigger whose pattern made that capture
// optional.
func (f *Formatter) Format(ctx match.Context) string {
	holes := match.FindVarHoles(f.source)
	if len(holes) == 0 {
		return f.source
	}

	var out strings.Builder
	last := 0
	for _, h := range holes {
		out.WriteString(f.source[last:h.Start])
		switch {
		case h.Escaped:
			out.WriteString(h.Literal)
		case h.IsIndex:
			if i := h.Index - 1; i >= 0 && i < len(ctx.Indexed) {
				out.WriteString(ctx.Indexed[i].Plain)
			}
		default:
			if c, ok := ctx.Named[h.Name]; ok {
				out.WriteString(c.Plain)
			}
		}
		last = h.End
	}
	out.WriteString(f.source[last:])

	return out.String()
}
