package dispatch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wireline-mud/wireline/internal/connstate"
)

// Registry owns every live connection's state, guarded by one mutex —
// never held across a suspension point; callers acquire, clone the
// *connstate.Connection pointer they need, and release immediately.
type Registry struct {
	mu    sync.Mutex
	conns map[ConnectionID]*connstate.Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[ConnectionID]*connstate.Connection)}
}

// Create allocates a new connection id and its backing Connection.
func (r *Registry) Create() (ConnectionID, *connstate.Connection) {
	id := ConnectionID(uuid.New().String())
	conn := connstate.NewConnection(string(id))

	r.mu.Lock()
	r.conns[id] = conn
	r.mu.Unlock()

	return id, conn
}

// Get returns the connection for id, if it's still live.
func (r *Registry) Get(id ConnectionID) (*connstate.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// Drop removes a connection from the registry, e.g. once its
// transport goroutine has finished unwinding after a disconnect.
func (r *Registry) Drop(id ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}
