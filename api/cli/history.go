package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored runs, or show one run in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config.ResultsDatabaseURL == "" {
				return errors.New("history needs RESULTS_DATABASE_URL")
			}
			h, err := openHarness(cmd, opts)
			if err != nil {
				return err
			}
			defer h.Close()

			if len(args) == 1 {
				report, err := h.Store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), opts.Format, report)
			}
			runs, err := h.Store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeRuns(cmd.OutOrStdout(), opts.Format, runs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}
