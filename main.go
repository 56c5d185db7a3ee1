package main

import (
	"context"

	"github.com/rdkadakkal/Yusen-Report/internal/bootstrap"
	"github.com/rdkadakkal/Yusen-Report/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Starting tracking report service")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		panic(err)
	}
}
