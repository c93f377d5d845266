package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/platewise/platewise-backend/internal/app"
	"github.com/platewise/platewise-backend/internal/platform/shutdown"
)

func main() {
	// Optional; the environment wins over .env values.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a.Start()

	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(addr) }()

	select {
	case <-ctx.Done():
		a.Log.Info("Shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		if err := a.Shutdown(drainCtx); err != nil {
			a.Log.Error("Shutdown incomplete", "error", err)
		}
		<-errCh
	case err := <-errCh:
		if err != nil {
			a.Log.Error("Server exited", "error", err)
			os.Exit(1)
		}
	}
}
