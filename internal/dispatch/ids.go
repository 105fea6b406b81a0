package dispatch

import "sync"

// RequestID identifies one request/response round trip on the
// line-delimited protocol. It's assigned by whichever side initiates
// the round trip: the client for ordinary requests, the daemon for a
// server-initiated ServerRequest like HandleAliasMatch.
type RequestID uint64

// RequestIDGenerator hands out strictly increasing RequestIDs starting
// at zero. Guarded by a mutex rather than an atomic counter, matching
// the original's tokio::sync::Mutex-guarded counter — there's no
// lock-free requirement here, and a plain mutex keeps the zero-value
// semantics identical to the original's Default-derived generator.
type RequestIDGenerator struct {
	mu     sync.Mutex
	nextID RequestID
}

// Next returns the next RequestID and advances the counter.
func (g *RequestIDGenerator) Next() RequestID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	return id
}

// ConnectionID identifies one connection for the lifetime of the
// daemon process. Generated server-side as a UUID rather than the
// original's bare incrementing integer, since a daemon exposing this
// protocol over a shared pipe has no natural single global counter
// owner the way an in-process Rust struct field does.
type ConnectionID string

// HandlerID and GroupID are opaque identifiers the client assigns
// itself (to a registered alias/trigger handler, or to a prompt
// group) and echoes back on later requests; the daemon never
// interprets them beyond using them as map keys.
type HandlerID string
type GroupID string
