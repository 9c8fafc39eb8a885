package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ai_content_studio/config"
	"ai_content_studio/metrics"
	"ai_content_studio/server"
)

const shutdownTimeout = 30 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		agent, err := buildAgent(ctx, cfg)
		if err != nil {
			return err
		}
		srv, err := server.New(agent, cfg.Server.RequestTimeout, logger)
		if err != nil {
			return err
		}

		err = runServers(ctx, newHTTPServers(cfg.Server, srv.Routes()), logger)
		logger.Info("service stopped")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

// newHTTPServers returns the API server and, when metrics_addr is set, a
// second server for /metrics.
func newHTTPServers(cfg config.ServerConfig, api http.Handler) []*http.Server {
	servers := []*http.Server{{
		Addr:         cfg.Addr,
		Handler:      api,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}}
	if cfg.MetricsAddr != "" {
		mm := http.NewServeMux()
		mm.Handle("/metrics", metrics.Handler())
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mm})
	}
	return servers
}

// runServers serves until ctx is done or one server fails, then shuts all
// of them down.
func runServers(ctx context.Context, servers []*http.Server, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		g.Go(func() error {
			logger.Info("starting HTTP server", zap.String("addr", hs.Addr))
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
