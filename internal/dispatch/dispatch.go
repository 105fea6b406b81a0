// Package dispatch implements the daemon side of the line-delimited
// JSON request/notification protocol: decoding, request/response and
// server-request correlation, and the per-request-type handlers that
// drive internal/connstate, internal/textproc, and internal/sendproc.
package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/wireline-mud/wireline/internal/match"
)

// maxLineSize bounds one line of wire input; a request/notification
// larger than this is a malformed client rather than a legitimately
// long alias pattern.
const maxLineSize = 1 << 20

// Dispatcher owns every connection, the compiled-matcher cache shared
// across them, and the single output channel the protocol is written
// back on.
type Dispatcher struct {
	Registry *Registry
	Compiler *match.Compiler
	Channels *ChannelSource
	Runner   ConnectionRunner

	ctx   context.Context
	group *errgroup.Group
}

// NewDispatcher wires a Dispatcher around an output writer and a
// ConnectionRunner, which internal/wireio supplies in production and a
// fake stands in for in tests.
func NewDispatcher(channels *ChannelSource, runner ConnectionRunner) *Dispatcher {
	return &Dispatcher{
		Registry: NewRegistry(),
		Compiler: match.NewCompiler(),
		Channels: channels,
		Runner:   runner,
	}
}

// Run reads newline-delimited protocol lines from input until it sees
// a Quit notification or input is exhausted. ctx is passed on to the
// spawned handlers; the read loop itself does not watch it, so
// cancelling ctx does not end the loop. Each
// request/notification is handled on its own goroutine, the way the
// original spawns a tokio task per dispatched request, so one slow
// handler (an alias round trip awaiting a client reply, a connection
// dial) never blocks the read loop. Run returns once every spawned
// handler — including any still-open per-connection runner
// goroutines — has finished.
func (d *Dispatcher) Run(ctx context.Context, input io.Reader) error {
	group, ctx := errgroup.WithContext(ctx)
	d.ctx = ctx
	d.group = group

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	quit := false
	for !quit && scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		if len(line) == 0 {
			continue
		}

		envelope, err := DecodeLine(line)
		if err != nil {
			// A single malformed line shouldn't bring down the daemon;
			// there is no request id to respond against, so the best
			// this loop can do is skip it and keep reading.
			continue
		}

		switch envelope.Kind {
		case EnvelopeServerResponse:
			d.Channels.DeliverResponse(envelope.ServerResponse)

		case EnvelopeNotification:
			if _, ok := envelope.Notification.(QuitNotification); ok {
				quit = true
			} else {
				d.dispatchNotification(envelope.Notification)
			}

		case EnvelopeRequest:
			d.dispatchRequest(d.Channels.ForRequest(envelope.RequestID), envelope.Request)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dispatch: reading input: %w", err)
	}
	return d.group.Wait()
}

func (d *Dispatcher) dispatchNotification(n ClientNotification) {
	switch n := n.(type) {
	case WindowSizeNotification:
		d.group.Go(func() error { d.handleWindowSize(n); return nil })
	case ClearNotification:
		d.group.Go(func() error { d.handleClear(n); return nil })
	}
}

func (d *Dispatcher) dispatchRequest(ch Channel, req ClientRequest) {
	d.group.Go(func() error {
		switch req := req.(type) {
		case ConnectRequest:
			d.handleConnect(ch, req)
		case DisconnectRequest:
			d.handleDisconnect(ch, req)
		case SendRequest:
			d.handleSend(ch, req)
		case ConfigureConnectionRequest:
			d.handleConfigureConnection(ch, req)
		case GetHistoryRequest:
			d.handleGetHistory(ch, req)
		case ScrollHistoryRequest:
			d.handleScrollHistory(ch, req)
		case CompleteComposerRequest:
			d.handleCompleteComposer(ch, req)
		case RegisterAliasRequest:
			d.handleRegisterAlias(ch, req)
		case RegisterTriggerRequest:
			d.handleRegisterTrigger(ch, req)
		case RegisterPromptRequest:
			d.handleRegisterPrompt(ch, req)
		case SetPromptContentRequest:
			d.handleSetPromptContent(ch, req)
		case SetActivePromptGroupRequest:
			d.handleSetActivePromptGroup(ch, req)
		}
		return nil
	})
}
