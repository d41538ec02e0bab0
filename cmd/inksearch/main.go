package main

import (
	"context"
	"os/signal"
	"syscall"

	"inksearch/internal/cli"
)

func main() {
	// cancel in-flight searches on ctrl+c outside the tui
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
