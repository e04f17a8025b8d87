package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/x31a/acrobits-websvc/internal/backend/postgres"
	"github.com/x31a/acrobits-websvc/internal/backend/stub"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/infra"
	"github.com/x31a/acrobits-websvc/internal/logging"
	"github.com/x31a/acrobits-websvc/internal/metrics"
	"github.com/x31a/acrobits-websvc/internal/routes"
	"github.com/x31a/acrobits-websvc/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the enabled web service endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, cfg, logger); err != nil {
				logger.Error("server exited", slog.Any("error", err))
				return err
			}
			logger.Info("server exited cleanly")
			return nil
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	res, err := infra.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Warn("close connections", slog.Any("error", err))
		}
	}()

	srv, err := server.New(cfg, dependencies(cfg, res), logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownPeriod))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// dependencies picks the collaborator implementation named by cfg.Backend.
func dependencies(cfg config.Config, res *infra.Resources) routes.Deps {
	deps := routes.Deps{Cache: res.Cache}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		b := postgres.New(res.DB)
		deps.Balance, deps.Rate, deps.Contacts = b, b, b
	default:
		b := stub.New()
		deps.Balance, deps.Rate, deps.Contacts = b, b, b
	}
	return deps
}
