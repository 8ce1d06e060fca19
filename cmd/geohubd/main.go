// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// geohubd is the connector management daemon: it serves the connector API
// over HTTP, authorizing every request against the caller's granted rights
// matrix.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/geohub-io/geohub/internal/api"
	"github.com/geohub-io/geohub/internal/cmd/config"
	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/connector/inmem"
	"github.com/geohub-io/geohub/internal/connector/postgres"
	"github.com/geohub-io/geohub/internal/event"
	"github.com/geohub-io/geohub/version"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	const op = "geohubd.realMain"
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "geohubd",
		Level: hclog.Info,
	})

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Error("unable to load configuration", "error", err)
		return 1
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	eventer, err := event.NewEventer(ctx, logger)
	if err != nil {
		logger.Error("unable to create eventer", "error", err)
		return 1
	}
	event.InitSysEventer(eventer)
	ctx, err = event.NewEventerContext(ctx, eventer)
	if err != nil {
		logger.Error("unable to create eventer context", "error", err)
		return 1
	}

	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		event.WriteError(ctx, op, err)
		return 1
	}
	defer cleanup()

	ctl, err := api.NewController(ctx, repo)
	if err != nil {
		event.WriteError(ctx, op, err)
		return 1
	}
	keyfunc := func(*jwt.Token) (any, error) { return []byte(cfg.JwtSecret), nil }
	router, err := api.NewRouter(ctx, ctl, keyfunc)
	if err != nil {
		event.WriteError(ctx, op, err)
		return 1
	}

	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		event.WriteSysEvent(ctx, op, "listener started",
			"addr", cfg.ListenAddr,
			"version", version.Get().FullVersionNumber(true))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		event.WriteError(ctx, op, err)
		return 1
	}
	event.WriteSysEvent(context.Background(), op, "shutdown complete")
	return 0
}

// openRepository picks the connector store from the configuration: postgres
// when a database URL is set, the in-memory store otherwise.
func openRepository(ctx context.Context, cfg *config.Config) (connector.Repository, func(), error) {
	const op = "geohubd.openRepository"
	if cfg.DatabaseUrl == "" {
		event.WriteSysEvent(ctx, op, "no database url configured, using in-memory store")
		return inmem.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, err
	}
	repo, err := postgres.New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
