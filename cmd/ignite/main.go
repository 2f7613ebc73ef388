// Command ignite generates sample HR data, trains the turnover and
// engagement models offline, and serves the risk read API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/ignite/pkg/logger"
)

func main() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
