package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/config"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Authenticate and add the planned test bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				opts.Config.Seed = seed
			}
			if err := config.CheckNotProdURL(opts.Config); err != nil {
				return err
			}
			h, err := openHarness(cmd, opts)
			if err != nil {
				return err
			}
			defer h.Close()

			sess, err := h.Service.Authenticate(cmd.Context())
			if err != nil {
				return err
			}
			res, err := h.Service.Seed(cmd.Context(), sess)
			if err != nil {
				return err
			}
			return writeSeed(cmd.OutOrStdout(), opts.Format, res)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for bill generation (overrides SEED)")
	return cmd
}
