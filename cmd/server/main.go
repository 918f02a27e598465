// Package main is the entry point for the memos API server. It serves the
// REST API and manages the database schema.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		slog.Error("memos-api failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
