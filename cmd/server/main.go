// Command server runs the engagement agent HTTP API and admin pages.
//
// Configuration comes from CONFIG_PATH (or ./config.yaml), .env and the
// environment. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/engage-agent/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("engage-agent: %v", err)
	}
}
