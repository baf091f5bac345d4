package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/unionworks/unioniq/internal/application/settlement"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres/repositories"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

// newRecommendCmd builds the one-shot recommendation command.  It talks to
// the database directly: no cache, no event publication, just the engine run
// printed as JSON.  Useful for support work and for eyeballing what the API
// would return for a claim.
func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "recommend <claim-id>",
		Short: "Generate a settlement recommendation for one claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claimID, err := common.ParseID(args[0])
			if err != nil {
				return errors.New(errors.ErrCodeValidation, "claim-id must be a valid UUID")
			}
			if tenantID == "" {
				return errors.New(errors.ErrCodeValidation, "--tenant is required")
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			engine := settlement.NewEngine(settlement.Deps{
				Claims:         repositories.NewClaimRepo(conn, logger),
				Clauses:        repositories.NewClauseRepo(conn, logger),
				Logger:         logger,
				PrecedentLimit: cfg.Engine.PrecedentLimit,
				QueryTimeout:   cfg.Engine.QueryTimeout,
			})
			service := settlement.NewService(settlement.ServiceDeps{Engine: engine, Logger: logger})

			rec, err := service.Recommend(ctx, common.TenantID(tenantID), claimID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant (union local) the claim belongs to")
	return cmd
}
