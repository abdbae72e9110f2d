package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbeaudouin05/finsec-harness/api/router"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// NewServeStubCommand serves the in-process stub API for local dry runs.
func NewServeStubCommand(opts *RootOptions) *cobra.Command {
	var (
		addr        string
		failPeriods []string
	)
	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Serve a local stand-in for the finsec API under /api",
		RunE: func(cmd *cobra.Command, args []string) error {
			routerOpts, err := stubOptions(opts.Config.Email, opts.Config.Password, failPeriods)
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: router.NewRouter(routerOpts...), ReadHeaderTimeout: 5 * time.Second}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			slog.Info("stub API listening", "url", fmt.Sprintf("http://%s/api", addr))

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	cmd.Flags().StringSliceVar(&failPeriods, "fail-period", nil, "answer period=status for analytics, e.g. year=500")
	return cmd
}

func stubOptions(email, password string, failPeriods []string) ([]router.Option, error) {
	opts := []router.Option{router.WithAccount(email, password)}
	for _, fp := range failPeriods {
		name, code, ok := strings.Cut(fp, "=")
		period := models.Period(name)
		if !ok || !period.Valid() {
			return nil, fmt.Errorf("invalid --fail-period %q: want week|month|year=status", fp)
		}
		status, err := strconv.Atoi(code)
		if err != nil || status < 100 || status > 599 {
			return nil, fmt.Errorf("invalid --fail-period %q: bad status %q", fp, code)
		}
		opts = append(opts, router.WithPeriodStatus(period, status))
	}
	return opts, nil
}
