package main

import (
	"context"
	"time"

	"github.com/niksmo/shopfront/config"
	"github.com/niksmo/shopfront/internal/app"
	"github.com/niksmo/shopfront/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	statsService := app.NewStats(sigCtx, cfg)

	statsService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	statsService.Close(ctx)
}
