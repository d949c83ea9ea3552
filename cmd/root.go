package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightops/app"
	"github.com/kilianp07/flightops/config"
	"github.com/kilianp07/flightops/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "flightops",
	Short:         "Runway and crew scheduling engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service, runs fn and
// saves the snapshot. Notifications raised by fn are printed to stderr.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *app.Service) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	feed, done := svc.Subscribe()
	runErr := fn(ctx, svc)
	done()
	for n := range feed {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s %s\n", n.Severity(), n.Timestamp, n.Message)
	}
	return runErr
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			return svc.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
