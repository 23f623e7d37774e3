package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/erazemk/evidenca/internal/api"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/metrics"
	"github.com/erazemk/evidenca/internal/notify"
)

const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Open the store and serve the HTTP API until interrupted.

A store is created at --db if none exists; the admin password is printed once.
Events are logged and, when EVIDENCA_REDIS_URL is set, published to Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", rootOpts.Config.HTTP.Addr, "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, opts *RootOptions, addr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := opts.Log
	cfg := opts.Config

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sinks := notify.Multi{notify.NewLogSink(log)}
	if cfg.Redis.URL != "" {
		client, err := notify.DialRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()
		sinks = append(sinks, notify.NewRedisSink(client, cfg.Redis.Channel, log))
		log.Info().Str("channel", cfg.Redis.Channel).Msg("publishing events to redis")
	}

	engine := inventory.New(
		inventory.WithLogger(log),
		inventory.WithAdminUser(cfg.Auth.AdminUser),
		inventory.WithNotifier(sinks),
		inventory.WithMetrics(metrics.NewEngineMetrics(reg)),
	)

	err := engine.Open(ctx, opts.DB)
	if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		creds, createErr := engine.Create(ctx, opts.DB)
		if createErr != nil {
			return createErr
		}
		if err := printCredentials(opts.printer(cmd), engine.StoreID(), opts.DB, creds); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		if secret, err = engine.JWTSecret(ctx); err != nil {
			return fmt.Errorf("loading jwt secret: %w", err)
		}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(engine, api.Options{JWTSecret: secret, Log: log, Gatherer: reg}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("store_id", engine.StoreID()).Msg("server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped, closing store")
	return nil
}
