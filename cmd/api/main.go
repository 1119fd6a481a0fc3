// Package main provides the entry point for the StyleLens API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stylelens/v1/internal/infrastructure/container"
	"go.uber.org/fx"
)

func main() {
	// Fx logging stays off; the zap logger from the container does the talking.
	app := fx.New(
		fx.NopLogger,
		container.Module,
		fx.Invoke(func() {
			fmt.Println("StyleLens API - photo in, shopping list out")
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatalf("Failed to stop API server gracefully: %v", err)
	}
}
