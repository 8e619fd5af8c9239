package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/git-release-name/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve release names over HTTP",
		Long: `Serve the release-name API:

  GET /api/release-name?shas=a,b&format=snake   bulk lookup (JSON)
  GET /api/release-name/random?format=title     random name (JSON)
  GET /api/release-name/{sha}?format=camel      single lookup (text)
  GET /healthz, GET /metrics`,
		Run: runServe,
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address (default from config, else 0.0.0.0:6767)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	listen, _ := cmd.Flags().GetString("listen")
	if listen == "" {
		listen = cfg.Listen
	}

	r, err := newResolver()
	if err != nil {
		exitErr("load dictionary", err)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(r, logger).Run(ctx, listen); err != nil {
		exitErr("serve", err)
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
