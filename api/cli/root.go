package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/bootstrap"
	"github.com/tbeaudouin05/finsec-harness/api/config"
	"github.com/tbeaudouin05/finsec-harness/api/logging"
)

// RootOptions holds global flags and the configuration loaded from them.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string

	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the finsec-harness command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "finsec-harness",
		Short:         "Integration harness for the finsec spending analytics API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			var err error
			if opts.EnvFile != "" {
				opts.Config, err = config.LoadConfigFrom(opts.EnvFile)
			} else {
				opts.Config, err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logging.Setup(cmd.ErrOrStderr(), opts.Config.LogLevel, opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level, including response bodies")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "load this env file instead of searching for .env")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewServeStubCommand(opts))

	return cmd
}

func openHarness(cmd *cobra.Command, opts *RootOptions) (*bootstrap.Harness, error) {
	return bootstrap.Init(cmd.Context(), opts.Config)
}
