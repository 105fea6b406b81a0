package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/wireline-mud/wireline/internal/connstate"
)

// instantRunner simulates a connection that ends the moment it starts,
// so handleConnect's full create/respond/notify/drop cycle can be
// exercised without any real transport.
type instantRunner struct{ ran chan struct{} }

func (r *instantRunner) Run(ctx context.Context, uri string, conn *connstate.Connection, notify ConnectionChannel) error {
	if r.ran != nil {
		close(r.ran)
	}
	return nil
}

func TestHandleConnectRespondsConnectingThenNotifiesAndDrops(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(NewChannelSource(&buf), &instantRunner{})
	d.ctx = context.Background()
	d.group = &errgroup.Group{}

	d.handleConnect(d.Channels.ForRequest(1), ConnectRequest{Connect{URI: "telnet://example.test:5656"}})
	if err := d.group.Wait(); err != nil {
		t.Fatal(err)
	}

	dec := json.NewDecoder(&buf)
	var msgs []map[string]any
	for {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			break
		}
		msgs = append(msgs, m)
	}

	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %+v", len(msgs), msgs)
	}
	if msgs[0]["type"] != "Connecting" {
		t.Fatalf("got first message %+v", msgs[0])
	}
	connID, _ := msgs[0]["connection_id"].(string)
	if connID == "" {
		t.Fatalf("expected a connection id, got %+v", msgs[0])
	}
	if msgs[1]["type"] != "Connected" || msgs[1]["connection_id"] != connID {
		t.Fatalf("got second message %+v", msgs[1])
	}
	if msgs[2]["type"] != "Disconnected" || msgs[2]["connection_id"] != connID {
		t.Fatalf("got third message %+v", msgs[2])
	}

	if _, ok := d.Registry.Get(ConnectionID(connID)); ok {
		t.Fatal("expected the connection to be dropped from the registry once Run returns")
	}
}

func TestHandleDisconnectPushesOutboxDisconnect(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(NewChannelSource(&buf), nil)
	d.ctx = context.Background()
	d.group = &errgroup.Group{}

	id, conn := d.Registry.Create()
	d.handleDisconnect(d.Channels.ForRequest(1), DisconnectRequest{ConnectionID: id})

	select {
	case out := <-conn.Outbox:
		if out.Kind != connstate.OutgoingDisconnect {
			t.Fatalf("got kind %v", out.Kind)
		}
	default:
		t.Fatal("expected a disconnect value on the outbox")
	}
}
