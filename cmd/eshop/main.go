package main

import (
	"context"
	"time"

	"github.com/niksmo/eshop/config"
	"github.com/niksmo/eshop/internal/app"
	"github.com/niksmo/eshop/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	eshopService := app.New(sigCtx, cfg)

	eshopService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	eshopService.Close(ctx)
}
