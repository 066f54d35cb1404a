package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"noebook-backend/internal/components/serviceutil"
	"noebook-backend/internal/components/telemetry"
	"noebook-backend/internal/config"
	"noebook-backend/internal/mcpserver"
	"noebook-backend/internal/scrapers/noe"

	"github.com/mark3labs/mcp-go/server"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.json5", "The json5 config file to read the booking site and credentials from.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		telemetry.InitSlog(false)
		serviceutil.Fatal("failed to load config", err)
	}
	telemetry.InitSlog(cfg.Debug)

	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "noebook-mcp")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}()
	telemetry.InstrumentPerfStats(ctx)

	opts, err := cfg.ClientOptions(telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("failed to create client options", err)
	}
	client, err := noe.NewClient(opts)
	if err != nil {
		serviceutil.Fatal("failed to create booking client", err)
	}

	s := mcpserver.New(client, version, telemetry.SlogAPI{})
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(os.Stderr, "noebook-mcp: ", log.LstdFlags))

	slog.Info("serving mcp over stdio", "version", version)
	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && ctx.Err() == nil {
		slog.Error("mcp server stopped", "err", err)
	}
}
