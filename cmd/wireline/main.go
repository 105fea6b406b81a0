// Command wireline is the daemon entrypoint: it speaks the
// line-delimited JSON protocol on stdin/stdout, dialing and driving
// MUD connections themselves over internal/wireio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wireline-mud/wireline/internal/dispatch"
	"github.com/wireline-mud/wireline/internal/wireio"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	channels := dispatch.NewChannelSource(os.Stdout)
	d := dispatch.NewDispatcher(channels, wireio.NewRunner())

	if err := d.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
