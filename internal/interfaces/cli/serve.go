package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unionworks/unioniq/internal/app"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}
			logging.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			logger.Info("starting unioniq",
				logging.String("version", Version),
				logging.Int("port", cfg.Server.Port),
			)
			return a.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	return cmd
}
