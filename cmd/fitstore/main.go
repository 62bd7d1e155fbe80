package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/niksmo/fitstore/config"
	"github.com/niksmo/fitstore/internal/app"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	fitstore := app.New(sigCtx, cfg)

	fitstore.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	fitstore.Close(ctx)
}
