package match

import "errors"

// ErrOutOfOrderIndexes is returned when a simple pattern's `$N` holes
// do not appear in strictly increasing order (e.g. "$2 before $1").
var ErrOutOfOrderIndexes = errors.New("match: indexed holes must strictly increase")

// ErrUnsupportedKind is returned when a MatcherSpec names a Kind this
// compiler doesn't recognize.
var ErrUnsupportedKind = errors.New("match: unsupported matcher kind")
