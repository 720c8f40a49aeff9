package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/render"
	"github.com/rewired-gh/launchdash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Loads the dataset once and serves the dashboard page, the JSON figure
endpoints and the rendered charts until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, dash, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	srv := server.New(dash, server.Options{
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		ChartSize:         render.Size{Width: cfg.Server.ChartWidth, Height: cfg.Server.ChartHeight},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("Shutdown signal received, cleaning up...")
		}
		return nil
	})

	return g.Wait()
}
