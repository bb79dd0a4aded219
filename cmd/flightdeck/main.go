// Flightdeck - local-first flight route search and favorites.
//
// Search the bundled airport catalog, browse destination routes from
// any airport, and bookmark favorite departure→destination pairs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/flightdeck/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
