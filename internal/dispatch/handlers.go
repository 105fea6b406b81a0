package dispatch

import (
	"fmt"

	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/completion"
	"github.com/wireline-mud/wireline/internal/connstate"
	"github.com/wireline-mud/wireline/internal/formatters"
	"github.com/wireline-mud/wireline/internal/match"
	"github.com/wireline-mud/wireline/internal/sendproc"
	"github.com/wireline-mud/wireline/internal/textproc"
)

// defaultHistoryPageSize is used when a GetHistory request carries no
// cursor of its own to inherit a limit from.
const defaultHistoryPageSize = 50

// completionLimit caps how many suggestions CompleteComposer returns,
// regardless of how many candidates the completion sources offer.
const completionLimit = 50

func invalidConnectionID(id ConnectionID) error {
	return fmt.Errorf("Invalid connection ID %s", id)
}

func (d *Dispatcher) lookupConnection(id ConnectionID) (*connstate.Connection, error) {
	conn, ok := d.Registry.Get(id)
	if !ok {
		return nil, invalidConnectionID(id)
	}
	return conn, nil
}

// handleConnect creates a connection, responds Connecting immediately
// so the client can address it before the dial finishes, then runs the
// connection for as long as it lasts. Connected is sent optimistically
// right before the runner starts: ConnectionRunner bundles dialing and
// the read loop into one blocking call, so there is no intermediate
// point at which this package can observe "dial succeeded" separately
// from "the loop ended".
func (d *Dispatcher) handleConnect(ch Channel, req ConnectRequest) {
	id, conn := d.Registry.Create()
	req.Config.Apply(conn)

	ch.Respond(Connecting(id))

	connCh := ch.ForConnection(id)
	connCh.Notify(ConnectedNotification())

	d.group.Go(func() error {
		_ = d.Runner.Run(d.ctx, req.URI, conn, connCh)
		connCh.Notify(DisconnectedNotification())
		d.Registry.Drop(id)
		return nil
	})
}

func (d *Dispatcher) handleDisconnect(ch Channel, req DisconnectRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	conn.Outbox <- connstate.Outgoing{Kind: connstate.OutgoingDisconnect}
	ch.Respond(OkResult())
}

func (d *Dispatcher) handleSend(ch Channel, req SendRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	processed, err := conn.Outgoing.Process(req.Text)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	if processed == nil {
		// An alias resolved to sendproc.Stop: the original's handler
		// discards the line with no response at all.
		return
	}

	conn.Outbox <- connstate.Outgoing{Kind: connstate.OutgoingText, Text: *processed}
	if req.persist() {
		conn.RecordSent(*processed)
	}
	ch.Respond(SendResult(true))
}

func (d *Dispatcher) handleConfigureConnection(ch Channel, req ConfigureConnectionRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	req.ConnectionConfig.Apply(conn)
	ch.Respond(OkResult())
}

func (d *Dispatcher) handleGetHistory(ch Channel, req GetHistoryRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	entries, cursor := connstate.GetHistory(conn.Sent, limit, req.Cursor)
	ch.Respond(HistoryResult(entries, cursor))
}

func (d *Dispatcher) handleScrollHistory(ch Channel, req ScrollHistoryRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	var direction connstate.ScrollDirection
	switch req.Direction {
	case "older":
		direction = connstate.ScrollOlder
	case "newer":
		direction = connstate.ScrollNewer
	default:
		ch.Respond(ErrorResult(fmt.Errorf("dispatch: unknown scroll direction %q", req.Direction)))
		return
	}

	content, cursor := connstate.ScrollHistory(conn.Sent, direction, req.Content, req.Cursor)
	ch.Respond(HistoryScrollResult(content, cursor))
}

func (d *Dispatcher) handleCompleteComposer(ch Channel, req CompleteComposerRequest) {
	conn, ok := d.Registry.Get(req.ConnectionID)
	if !ok {
		ch.Respond(ErrorResult(connstate.ErrNotConnected))
		return
	}

	params := completion.Params{LineToCursor: req.LineToCursor}
	candidates := append(conn.SentCompletions.Suggest(params), conn.IncomingCompletions.Suggest(params)...)
	words := completion.Filter(params, candidates)
	if len(words) > completionLimit {
		words = words[:completionLimit]
	}
	ch.Respond(CompleteResult(words))
}

// handleRegisterAlias wires a matcher into the connection's outgoing
// (sendproc) pipeline. Exactly one of AliasReplacement's two fields
// must be set: HandlerID round-trips the match to the client via
// HandleAliasMatch, ReplacementPattern expands a local formatter
// template instead. sendproc itself rejects a consuming matcher, since
// there is nothing for Consume to excise from on the send side.
func (d *Dispatcher) handleRegisterAlias(ch Channel, req RegisterAliasRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	matcher, err := req.Matcher.Compile(d.Compiler)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	handler, err := d.aliasHandler(ch, req.ConnectionID, req.AliasReplacement)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	if err := conn.Outgoing.RegisterMatcher(matcher, handler); err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	ch.Respond(OkResult())
}

func (d *Dispatcher) aliasHandler(ch Channel, connID ConnectionID, replacement AliasReplacement) (sendproc.MatchHandler, error) {
	switch {
	case replacement.HandlerID != nil:
		handlerID := *replacement.HandlerID
		connCh := ch.ForConnection(connID)
		return func(ctx match.Context) (sendproc.MatchOutcome, error) {
			wireCtx := matchContextFrom(ctx, wholeRange(ctx))
			resp, err := connCh.Request(d.ctx, HandleAliasMatch(handlerID, wireCtx))
			if err != nil {
				return sendproc.MatchOutcome{}, err
			}
			if resp.Replacement == nil {
				return sendproc.MatchOutcome{Result: sendproc.Stop}, nil
			}
			return sendproc.MatchOutcome{Result: sendproc.ReplaceWith, Text: *resp.Replacement}, nil
		}, nil

	case replacement.ReplacementPattern != nil:
		formatter, err := formatters.Compile(*replacement.ReplacementPattern)
		if err != nil {
			return nil, err
		}
		return func(ctx match.Context) (sendproc.MatchOutcome, error) {
			return sendproc.MatchOutcome{Result: sendproc.ReplaceWith, Text: formatter.Format(ctx)}, nil
		}, nil

	default:
		return nil, fmt.Errorf("dispatch: alias must specify either handler_id or replacement_pattern")
	}
}

// wholeRange approximates the notification wire format's
// full_match_range from the whole capture alone: the textproc/sendproc
// callback signatures only carry match.Context, not the byte range
// match.Result computed the match at, so the best this package can
// report is the matched text's own length starting at 0.
func wholeRange(ctx match.Context) ansi.Range {
	return ansi.Range{Start: 0, End: len(ctx.Whole.Plain)}
}

func (d *Dispatcher) handleRegisterTrigger(ch Channel, req RegisterTriggerRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	matcher, err := req.Matcher.Compile(d.Compiler)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	handlerID := req.HandlerID
	connCh := ch.ForConnection(req.ConnectionID)
	conn.Incoming.RegisterMatcher(handlerID, matcher, textproc.FullLine, func(ctx match.Context) error {
		connCh.Notify(TriggerMatchedNotification(handlerID, matchContextFrom(ctx, wholeRange(ctx))))
		return nil
	})
	ch.Respond(OkResult())
}

func (d *Dispatcher) handleRegisterPrompt(ch Channel, req RegisterPromptRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	spec, err := req.Matcher.toSpec()
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	if err := conn.Incoming.RegisterPrompt(string(req.GroupID), req.PromptIndex, spec, conn); err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	ch.Respond(OkResult())
}

func (d *Dispatcher) handleSetPromptContent(ch Channel, req SetPromptContentRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}

	conn.Prompts.GetOrCreate(string(req.GroupID)).SetIndex(req.PromptIndex, ansi.FromString(req.Content))
	if req.activatesGroup() {
		conn.ActiveGroup = string(req.GroupID)
	}
	ch.Respond(OkResult())
}

func (d *Dispatcher) handleSetActivePromptGroup(ch Channel, req SetActivePromptGroupRequest) {
	conn, err := d.lookupConnection(req.ConnectionID)
	if err != nil {
		ch.Respond(ErrorResult(err))
		return
	}
	conn.ActiveGroup = string(req.GroupID)
	ch.Respond(OkResult())
}

// handleClear and handleWindowSize answer notifications: per the
// original, neither ever produces a response, even when something goes
// wrong (there is no inbound request id to respond against).

func (d *Dispatcher) handleClear(n ClearNotification) {
	conn, ok := d.Registry.Get(n.ConnectionID)
	if !ok {
		return
	}
	conn.Clear()
}

func (d *Dispatcher) handleWindowSize(n WindowSizeNotification) {
	conn, ok := d.Registry.Get(n.ConnectionID)
	if !ok {
		return
	}
	conn.Outbox <- connstate.Outgoing{Kind: connstate.OutgoingWindowSize, Width: n.Width, Height: n.Height}
}
