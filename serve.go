// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/router"
	"github.com/danielhkuo/livevote/store"
)

func newServeCmd() *cobra.Command {
	var cfg cliparse.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the data service",
		Long: `Run the data service: the options collection with live snapshot
streaming and atomic increments, plus the identity provider.

SESSION_SECRET must be set (or passed with --session-secret).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ResolveServer(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cliparse.BindServerFlags(cmd.Flags(), &cfg)

	return cmd
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	dbConn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	st := store.New(dbConn)
	// Picks up edits made outside this process, such as livevote seed
	go st.Watch(ctx, cfg.WatchInterval)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := router.NewRouter(dbConn, cfg, st, registry)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		<-ctx.Done()
		// Close also ends open snapshot streams
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}
