// Package cli defines the unioniq command tree: serve, migrate, and recommend.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unionworks/unioniq/internal/app"
	"github.com/unionworks/unioniq/internal/config"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the unioniq root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "unioniq",
		Short:   "UnionIQ settlement recommendation service",
		Long:    "UnionIQ analyzes grievance claims against historical precedents and\ncontract clauses to produce settlement recommendations for union locals.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newRecommendCmd(opts),
	)
	return cmd
}

// loadConfig resolves the effective configuration for a command invocation.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// buildLogger constructs the logger for a command from the loaded config.
func buildLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// Execute runs the CLI; it is the single entry point for cmd/unioniq.
func Execute() error {
	app.Version = Version
	return NewRootCommand().Execute()
}
