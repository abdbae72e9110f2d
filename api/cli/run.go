package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/config"
)

// NewRunCommand runs the full login → seed → verify sequence.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var (
		seed   int64
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Log in, seed 60 days of bills and verify spending analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				opts.Config.Seed = seed
			}
			if cmd.Flags().Changed("strict-seeding") {
				opts.Config.StrictSeeding = strict
			}
			if err := config.CheckNotProdURL(opts.Config); err != nil {
				return err
			}
			h, err := openHarness(cmd, opts)
			if err != nil {
				return err
			}
			defer h.Close()

			report, runErr := h.Service.Run(cmd.Context())
			if err := h.Record(cmd.Context(), report); err != nil {
				slog.Warn("failed to record run", "run_id", report.ID, "error", err)
			}
			if err := writeReport(cmd.OutOrStdout(), opts.Format, report); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			return report.Err()
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for bill generation (overrides SEED)")
	cmd.Flags().BoolVar(&strict, "strict-seeding", false, "fail the run when any bill write fails")
	return cmd
}
