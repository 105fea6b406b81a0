package dispatch

import (
	"context"

	"github.com/wireline-mud/wireline/internal/connstate"
)

// ConnectionRunner dials a MUD and drives its connection loop —
// reading bytes into conn.Incoming, writing whatever lands on
// conn.Outbox, and returning (with or without error) once the
// connection ends. internal/wireio provides the real implementation;
// anything satisfying this interface can stand in for tests.
type ConnectionRunner interface {
	Run(ctx context.Context, uri string, conn *connstate.Connection, notify ConnectionChannel) error
}
