// Package config resolves the small set of environment variables this
// engine reads at startup and connect time, generalized from the
// teacher's XDG/AppData directory resolution (config/config.go) to
// this engine's own variables instead of a Lua init-file path.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultPort is used when a connect URI names no port of its own.
const DefaultPort = 5656

// DumpPath returns the KODACHI_DUMP path, or "" if unset or empty —
// both mean "don't tee received bytes to a file".
func DumpPath() string {
	return os.Getenv("KODACHI_DUMP")
}

// DebugNamespaces splits DEBUG=<csv> into its individual namespace
// names, trimming surrounding whitespace and dropping empty entries
// left by stray commas.
func DebugNamespaces() []string {
	raw := os.Getenv("DEBUG")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Term returns the TERM environment variable, reported during Telnet
// TTYPE subnegotiation, falling back to "unknown" the way most telnet
// clients do when nothing is set.
func Term() string {
	if t := os.Getenv("TERM"); t != "" {
		return t
	}
	return "unknown"
}

// Target is a resolved connect destination: host, port, and whether to
// dial in over TLS.
type Target struct {
	Host string
	Port int
	TLS  bool
}

// Address formats the target for net.Dial/tls.Dial's "host:port" form.
func (t Target) Address() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// ParseURI resolves a connect URI of the form [scheme://]host[:port]
// into a Target. A bare "host:port" (no scheme) is treated as
// telnet://host:port. Recognized schemes are "telnet" (plain TCP),
// and "tls"/"ssl" (TLS); anything else is an error.
func ParseURI(uri string) (Target, error) {
	if !strings.Contains(uri, "://") {
		uri = "telnet://" + uri
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Target{}, fmt.Errorf("config: parsing connect uri: %w", err)
	}
	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("config: connect uri %q has no host", uri)
	}

	var tls bool
	switch u.Scheme {
	case "telnet":
		tls = false
	case "tls", "ssl":
		tls = true
	default:
		return Target{}, fmt.Errorf("config: unexpected scheme %q", u.Scheme)
	}

	port := DefaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Target{}, fmt.Errorf("config: parsing connect uri port: %w", err)
		}
	}

	return Target{Host: u.Hostname(), Port: port, TLS: tls}, nil
}
