// Package wireio is the transport layer: it dials the TCP/TLS socket a
// Connect request names, negotiates telnet options over it, and
// shuttles bytes between that socket and a connection's incoming
// processor / outbox. It follows network/client.go's TCPClient for
// the dial itself (keepalive TCP, optional TLS upgrade), but drives
// one connection with a single select loop rather than a pair of
// independent read/write goroutines, since the processor and the
// telnet framer are not safe to touch from more than one goroutine at
// once; a background reader goroutine exists only to turn the
// blocking net.Conn.Read into a channel the select loop can wait on
// alongside the connection's outbox.
package wireio

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/config"
	"github.com/wireline-mud/wireline/internal/connstate"
	"github.com/wireline-mud/wireline/internal/dispatch"
	"github.com/wireline-mud/wireline/internal/telnet"
	"github.com/wireline-mud/wireline/internal/wlog"
)

var log = wlog.For("wireio")

// writeDeadline bounds how long a single write to the peer may take
// before the connection is considered stalled, matching
// network/client.go's writeLoop.
const writeDeadline = 5 * time.Second

// dialFunc abstracts the actual network dial so tests can substitute
// an in-memory pipe instead of a real socket, the way network/mock.go
// stood in for net.Conn.
type dialFunc func(ctx context.Context, target config.Target) (net.Conn, error)

// Runner implements dispatch.ConnectionRunner against real TCP/TLS
// sockets. The zero value is ready to use; dial is only overridden by
// tests.
type Runner struct {
	dial dialFunc
}

// NewRunner returns a Runner that dials real sockets.
func NewRunner() *Runner {
	return &Runner{dial: dialTCP}
}

// Run resolves uri, dials it, and drives the connection until it ends
// or ctx is cancelled. A dial failure is reported as a connection
// status line rather than a Go error: internal/dispatch's
// handleConnect always sends Disconnected once Run returns, whether or
// not the dial ever succeeded.
func (r *Runner) Run(ctx context.Context, uri string, state *connstate.Connection, notify dispatch.ConnectionChannel) error {
	target, err := config.ParseURI(uri)
	if err != nil {
		notify.Notify(dispatch.ConnectionStatusNotification(fmt.Sprintf("Failed to connect: %s", err)))
		return nil
	}

	dial := r.dial
	if dial == nil {
		dial = dialTCP
	}

	netConn, err := dial(ctx, target)
	if err != nil {
		notify.Notify(dispatch.ConnectionStatusNotification(fmt.Sprintf("Failed to connect: %s", err)))
		return nil
	}
	defer netConn.Close()

	err = runSession(ctx, netConn, state, notify)
	if err == nil {
		return nil
	}
	message, ok := benignDisconnectMessage(err)
	if !ok {
		return err
	}
	if message != "" {
		notify.Notify(dispatch.ConnectionStatusNotification(message))
	}
	return nil
}

func dialTCP(ctx context.Context, target config.Target) (net.Conn, error) {
	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", target.Address())
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := raw.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(30 * time.Second)
	}
	if !target.TLS {
		return raw, nil
	}

	tlsConn := tls.Client(raw, &tls.Config{ServerName: target.Host})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		raw.Close()
		return nil, err
	}
	return tlsConn, nil
}

// readResult is one outcome of a blocking socket read, handed from the
// background reader goroutine to the session's select loop.
type readResult struct {
	data []byte
	err  error
}

// runSession drives one connection's traffic until the socket errors,
// the outbox asks for a disconnect, or ctx is cancelled.
func runSession(ctx context.Context, netConn net.Conn, state *connstate.Connection, notify dispatch.ConnectionChannel) error {
	var dump *os.File
	if path := config.DumpPath(); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("could not open dump file %s: %v", path, err)
		} else {
			dump = f
			defer f.Close()
		}
	}

	reads := make(chan readResult, 1)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := netConn.Read(buf)
			out := readResult{err: err}
			if n > 0 {
				out.data = append([]byte(nil), buf[:n]...)
			}
			reads <- out
			if err != nil {
				return
			}
		}
	}()

	s := &session{
		conn:     netConn,
		state:    state,
		notify:   notify,
		framer:   telnet.NewFramer(telnet.DefaultCompatibility()),
		dump:     dump,
		receiver: dispatch.WireReceiver{Channel: notify},
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case r := <-reads:
			if r.err != nil {
				return r.err
			}
			if err := s.handleReceived(r.data); err != nil {
				return err
			}

		case out, ok := <-state.Outbox:
			if !ok {
				return nil
			}
			switch out.Kind {
			case connstate.OutgoingText:
				if err := s.sendLine(out.Text); err != nil {
					return err
				}
			case connstate.OutgoingWindowSize:
				if err := s.sendWindowSize(out.Width, out.Height); err != nil {
					return err
				}
			case connstate.OutgoingDisconnect:
				return nil
			}
		}
	}
}

// session bundles everything one connection's select loop touches.
// Every method on it is only ever called from that loop, so none of
// this needs its own locking.
type session struct {
	conn     net.Conn
	state    *connstate.Connection
	notify   dispatch.ConnectionChannel
	framer   *telnet.Framer
	dump     *os.File
	receiver dispatch.WireReceiver
}

func (s *session) handleReceived(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}
	if s.dump != nil {
		s.dump.Write(chunk)
	}

	frames := s.framer.Feed(chunk)
	for _, frame := range frames {
		if err := s.handleFrame(frame); err != nil {
			return err
		}
	}
	return s.flushFramer()
}

func (s *session) handleFrame(frame telnet.Frame) error {
	switch frame.Kind {
	case telnet.FrameData:
		return s.state.Incoming.Process(ansi.New(frame.Data), s.receiver)

	case telnet.FrameEvent:
		return s.handleSubnegotiation(frame)

	case telnet.FrameEndOfPrompt:
		if s.state.AutoPromptEnabled {
			return s.state.Incoming.FlushAsPrompt(s.receiver)
		}
		return nil

	case telnet.FrameNop:
		return nil
	}
	return nil
}

// handleSubnegotiation answers a TTYPE SEND request with TERM, the
// only subnegotiation this engine actively drives; any other
// negotiated option the framer surfaces here (GMCP, MSSP) is left
// unanswered rather than guessed at.
func (s *session) handleSubnegotiation(frame telnet.Frame) error {
	if frame.Option != telnet.OptTTYPE {
		return nil
	}
	if len(frame.Data) == 0 || frame.Data[0] != telnet.CmdSEND {
		return nil
	}

	payload := append([]byte{telnet.CmdIS}, []byte(config.Term())...)
	s.framer.SubnegotiationRaw(telnet.OptTTYPE, payload)
	return s.flushFramer()
}

func (s *session) sendLine(text string) error {
	if err := s.write(telnet.EncodeLine(text)); err != nil {
		return err
	}
	// The server will reprint any prompt it echoes back, so don't let
	// a stale partial line merge with it.
	s.state.Incoming.ResetPending()
	s.notify.Notify(dispatch.LocalSendNotification(text))
	return nil
}

func (s *session) sendWindowSize(width, height uint16) error {
	payload := []byte{byte(width >> 8), byte(width), byte(height >> 8), byte(height)}
	s.framer.SubnegotiationRaw(telnet.OptNAWS, payload)
	return s.flushFramer()
}

func (s *session) flushFramer() error {
	out := s.framer.Flush()
	if len(out) == 0 {
		return nil
	}
	return s.write(out)
}

func (s *session) write(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err := s.conn.Write(data)
	s.conn.SetWriteDeadline(time.Time{})
	return err
}

// benignDisconnectMessage classifies a read/write error as an ordinary
// way for a MUD connection to end (EOF, a timeout, or a reset) versus
// a transport fault worth propagating as a real error.
func benignDisconnectMessage(err error) (string, bool) {
	if errors.Is(err, io.EOF) {
		return "Disconnected.", true
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return "", true // our own shutdown, not the peer's
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("Disconnected: %s", err), true
	}
	if isConnectionReset(err) {
		return fmt.Sprintf("Disconnected: %s", err), true
	}

	return "", false
}

func isConnectionReset(err error) bool {
	return errors.Is(err, syscall.ECONNRESET)
}
