package main

import (
	"context"
	"log/slog"
	"os"

	"noebook-backend/cmd/noebook/commands"
	"noebook-backend/internal/components/serviceutil"
	"noebook-backend/internal/components/telemetry"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())

	tel, err := telemetry.SetupFromEnv(ctx, "noebook")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	cancel()

	if err != nil {
		os.Exit(1)
	}
}
