package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/clusterd/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /cluster and /clustering-guide over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "listen address (default from config, :5000)")
	f.Float64("rate-limit", 0, "requests per second accepted on /cluster, 0 disables")
	f.String("outputs", "", "directory receiving one session folder per request")
	return cmd
}

func runServer(ctx context.Context, a *app) error {
	a.log.WithField("version", a.cfg.Service.Version).Info("clusterd starting")
	return server.New(a.cfg, a.log).Run(ctx)
}
