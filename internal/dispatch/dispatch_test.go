package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/wireline-mud/wireline/internal/connstate"
)

func TestRunProcessesNotificationsThenStopsOnQuit(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(NewChannelSource(&out), nil)
	id, conn := d.Registry.Create()

	input := bytes.NewBufferString(
		fmt.Sprintf(`{"type":"WindowSize","connection_id":%q,"width":100,"height":40}`, string(id)) + "\n" +
			`{"type":"Quit"}` + "\n",
	)

	if err := d.Run(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-conn.Outbox:
		if got.Kind != connstate.OutgoingWindowSize || got.Width != 100 || got.Height != 40 {
			t.Fatalf("got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the window-size value to reach the outbox")
	}
}

func TestRunRoutesRequestsToResponses(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(NewChannelSource(&out), nil)
	id, _ := d.Registry.Create()

	input := bytes.NewBufferString(
		fmt.Sprintf(`{"id":1,"type":"GetHistory","connection_id":%q,"limit":10}`, string(id)) + "\n" +
			`{"type":"Quit"}` + "\n",
	)

	if err := d.Run(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	if out.Len() == 0 {
		t.Fatal("expected a response to have been written")
	}
}

func TestRunSkipsMalformedLinesWithoutStopping(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(NewChannelSource(&out), nil)

	input := bytes.NewBufferString(
		"not json at all\n" +
			`{"type":"Quit"}` + "\n",
	)

	if err := d.Run(context.Background(), input); err != nil {
		t.Fatal(err)
	}
}
