package connstate

import "errors"

// ErrNotConnected is returned by callers that need a connection to
// already exist (e.g. completing a composer line) rather than one
// they can report by id, matching the original's bare "Not connected"
// error text.
var ErrNotConnected = errors.New("Not connected")
