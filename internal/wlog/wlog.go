// Package wlog is a namespace-gated logger: each call site names the
// namespace it belongs to, and only namespaces listed in DEBUG=<csv>
// (internal/config.DebugNamespaces) actually print. This generalizes
// debug/monitor.go, which gates one fixed periodic status line behind
// RUNE_DEBUG=1 with a bare *log.Logger — this engine has many
// independent concerns (transport, matchers, prompts) that benefit
// from being enabled individually instead of all-or-nothing.
package wlog

import (
	"log"
	"os"
	"sync"

	"github.com/wireline-mud/wireline/internal/config"
)

var (
	mu      sync.Mutex
	enabled map[string]bool
	loaded  bool
	output  = log.New(os.Stderr, "", log.LstdFlags)
)

func namespaceEnabled(namespace string) bool {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		enabled = make(map[string]bool)
		for _, ns := range config.DebugNamespaces() {
			if ns == "*" {
				enabled["*"] = true
			}
			enabled[ns] = true
		}
		loaded = true
	}
	return enabled["*"] || enabled[namespace]
}

// Logger is a namespace-bound handle returned by For. Calls on a
// disabled namespace are free: they check one map lookup and return.
type Logger struct {
	namespace string
}

// For returns a Logger bound to namespace. Cheap to call repeatedly;
// callers typically hold one per long-lived component (a connection,
// the dispatcher) rather than looking it up per log line.
func For(namespace string) Logger {
	return Logger{namespace: namespace}
}

func (l Logger) Printf(format string, args ...any) {
	if !namespaceEnabled(l.namespace) {
		return
	}
	output.Printf("["+l.namespace+"] "+format, args...)
}

func (l Logger) Println(args ...any) {
	if !namespaceEnabled(l.namespace) {
		return
	}
	line := append([]any{"[" + l.namespace + "]"}, args...)
	output.Println(line...)
}

// reset clears the cached namespace set so tests can exercise DEBUG
// changes within a single process.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = false
	enabled = nil
}
