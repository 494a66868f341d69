package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/core"
	"github.com/status-im/market-dashboard/logger"
	"github.com/status-im/market-dashboard/tui"
)

const (
	modeServer = "server"
	modeTUI    = "tui"

	// defaultTUILogFile keeps log lines off the terminal dashboard
	defaultTUILogFile = "market-dashboard.log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	mode := flag.String("mode", modeServer, "run as 'server' (HTTP API) or 'tui' (terminal dashboard)")
	serve := flag.Bool("serve", false, "also start the HTTP API in tui mode")
	flag.Parse()

	if err := run(*configPath, *mode, *serve); err != nil {
		fmt.Fprintln(os.Stderr, "market-dashboard:", err)
		os.Exit(1)
	}
}

func run(configPath, mode string, serve bool) error {
	if mode != modeServer && mode != modeTUI {
		return fmt.Errorf("unknown mode %q, expected %q or %q", mode, modeServer, modeTUI)
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if mode == modeTUI && cfg.Logging.File == "" {
		cfg.Logging.File = defaultTUILogFile
	}
	_, closer, err := logger.Setup(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := core.Setup(ctx, cfg, core.Options{Serve: mode == modeServer || serve})
	if err != nil {
		return fmt.Errorf("setup services: %w", err)
	}

	if err := app.Registry.StartAll(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer app.Registry.StopAll()

	if mode == modeTUI {
		return tui.Run(ctx, app.Store)
	}

	log.Info().Str("port", cfg.Server.Port).Msg("Market dashboard running")
	<-ctx.Done()
	log.Info().Msg("Received shutdown signal, stopping services...")
	return nil
}
