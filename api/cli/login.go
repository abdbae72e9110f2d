package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
)

// NewLoginCommand checks the configured credentials without touching data.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and describe the returned token",
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
			return writeToken(cmd.OutOrStdout(), opts.Format, app.InspectToken(sess.Token))
		},
	}
}
