package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
)

func NewVerifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Authenticate and check spending analytics for every planned period",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHarness(cmd, opts)
			if err != nil {
				return err
			}
			defer h.Close()

			sess, err := h.Service.Authenticate(cmd.Context())
			if err != nil {
				return err
			}
			verdicts, err := h.Service.Verify(cmd.Context(), sess)
			if err != nil {
				return err
			}
			if err := writeVerdicts(cmd.OutOrStdout(), opts.Format, verdicts); err != nil {
				return err
			}
			report := app.RunReport{Verdicts: verdicts}
			for _, v := range verdicts {
				if !v.OK {
					report.Failures = append(report.Failures, v.Message)
				}
			}
			return report.Err()
		},
	}
}
