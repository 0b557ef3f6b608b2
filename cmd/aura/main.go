package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtding233/aura-gacha/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.SetOutput(os.Stderr)
		logging.Error("command failed", err, nil)
		os.Exit(1)
	}
}
