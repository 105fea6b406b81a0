package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"sync"
)

// safeWriter serializes writes from many goroutines onto one
// underlying io.Writer, matching the original's LockedWriter wrapper
// around a shared Arc<Mutex<Box<dyn Write>>>.
type safeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *safeWriter) writeLine(payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return nil
}

// ChannelSource owns the single output stream every Channel writes
// line-delimited JSON onto, plus the bits every Channel needs to
// originate its own server-to-client requests: an id generator and
// the correlation table those requests are answered through.
type ChannelSource struct {
	writer  *safeWriter
	ids     *RequestIDGenerator
	pending *PendingResponses
}

func NewChannelSource(w io.Writer) *ChannelSource {
	return &ChannelSource{
		writer:  &safeWriter{w: w},
		ids:     &RequestIDGenerator{},
		pending: NewPendingResponses(),
	}
}

// ForRequest returns a Channel bound to requestID, for responding to
// the single inbound request that carried it.
func (s *ChannelSource) ForRequest(requestID RequestID) Channel {
	return Channel{requestID: requestID, source: s}
}

// DeliverResponse routes a client's ResponseToServerRequest to
// whichever in-flight ConnectionChannel.Request call is waiting on it.
func (s *ChannelSource) DeliverResponse(r ResponseToServerRequest) {
	s.pending.Deliver(r)
}

// Channel answers exactly one inbound request: Respond sends its one
// Response, after which the Channel should not be used again.
type Channel struct {
	requestID RequestID
	source    *ChannelSource
}

func (c Channel) Respond(payload DaemonResponse) {
	c.source.writer.writeLine(responseEnvelope{RequestID: c.requestID, Payload: payload})
}

// ForConnection returns a ConnectionChannel scoped to connID, for
// sending notifications (and server-initiated requests) about that
// connection outside the single-response lifecycle of this Channel.
func (c Channel) ForConnection(connID ConnectionID) ConnectionChannel {
	return ConnectionChannel{connID: connID, source: c.source}
}

// ConnectionChannel sends any number of DaemonNotifications scoped to
// one connection, and can originate a ServerRequest/await its
// ClientResponse.
type ConnectionChannel struct {
	connID ConnectionID
	source *ChannelSource
}

func (c ConnectionChannel) Notify(n DaemonNotification) {
	c.source.writer.writeLine(notificationEnvelope{ConnectionID: c.connID, Payload: n})
}

// Request sends a ServerRequest and blocks until the client answers
// it (or ctx is cancelled, or Cancel is called on this request's id
// because the connection went away first).
func (c ConnectionChannel) Request(ctx context.Context, req ServerRequest) (ClientResponse, error) {
	id := c.source.ids.Next()
	waiter := c.source.pending.Register(id)

	if err := c.source.writer.writeLine(serverRequestEnvelope{
		RequestID:    id,
		ConnectionID: c.connID,
		Payload:      req,
	}); err != nil {
		c.source.pending.Cancel(id)
		return ClientResponse{}, err
	}

	select {
	case resp, ok := <-waiter:
		if !ok {
			return ClientResponse{}, ErrPendingRequestCancelled
		}
		return resp, nil
	case <-ctx.Done():
		c.source.pending.Cancel(id)
		return ClientResponse{}, ctx.Err()
	}
}

type responseEnvelope struct {
	RequestID RequestID      `json:"request_id"`
	Payload   DaemonResponse `json:"-"`
}

func (e responseEnvelope) MarshalJSON() ([]byte, error) {
	return mergeRequestID(e.RequestID, e.Payload)
}

type notificationEnvelope struct {
	ConnectionID ConnectionID        `json:"connection_id"`
	Payload      DaemonNotification `json:"-"`
}

func (e notificationEnvelope) MarshalJSON() ([]byte, error) {
	return mergeConnectionID(e.ConnectionID, e.Payload)
}

type serverRequestEnvelope struct {
	RequestID    RequestID     `json:"id"`
	ConnectionID ConnectionID  `json:"connection_id"`
	Payload      ServerRequest `json:"-"`
}

func (e serverRequestEnvelope) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	idBytes, err := json.Marshal(e.RequestID)
	if err != nil {
		return nil, err
	}
	connBytes, err := json.Marshal(e.ConnectionID)
	if err != nil {
		return nil, err
	}
	fields["id"] = idBytes
	fields["connection_id"] = connBytes
	return json.Marshal(fields)
}

// mergeRequestID flattens payload's own JSON object and injects
// "request_id" as a sibling field, matching serde(flatten) over
// struct Response { request_id, #[serde(flatten)] payload }.
func mergeRequestID(id RequestID, payload any) ([]byte, error) {
	return mergeField("request_id", id, payload)
}

func mergeConnectionID(id ConnectionID, payload any) ([]byte, error) {
	return mergeField("connection_id", id, payload)
}

func mergeField(key string, value, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	valueBytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	fields[key] = valueBytes
	return json.Marshal(fields)
}
