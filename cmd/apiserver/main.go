// Command apiserver runs the UnionIQ HTTP API server.  Equivalent to
// "unioniq serve"; exists so deployments can ship a single-purpose binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unionworks/unioniq/internal/app"
	"github.com/unionworks/unioniq/internal/config"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Version = version
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", logging.Err(err))
	}
	defer a.Close()

	logger.Info("starting unioniq apiserver",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)
	if err := a.Run(ctx); err != nil {
		logger.Fatal("server failed", logging.Err(err))
	}
}
