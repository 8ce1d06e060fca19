// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package config loads the daemon configuration from the environment.
package config

import (
	"context"
	"time"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix of every geohub environment variable, e.g.
// GEOHUB_LISTEN_ADDR.
const envPrefix = "geohub"

// Config holds the daemon configuration, loaded from GEOHUB_* environment
// variables.
type Config struct {
	// ListenAddr is the address the HTTP listener binds to.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// DatabaseUrl is the postgres connection string.  When empty the daemon
	// runs with the in-memory connector store.
	DatabaseUrl string `envconfig:"DATABASE_URL"`

	// JwtSecret is the HMAC key credentials are verified with.
	JwtSecret string `envconfig:"JWT_SECRET"`

	// LogLevel is the hclog level name (trace, debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ShutdownGrace bounds how long in-flight requests may finish on
	// shutdown.
	ShutdownGrace time.Duration `envconfig:"SHUTDOWN_GRACE" default:"15s"`
}

// Load reads the configuration from the environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	const op = "config.Load"
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "unable to process environment", errors.WithWrap(err))
	}
	if err := c.Validate(ctx); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// Validate checks the configuration and reports every problem found, not
// just the first.
func (c *Config) Validate(ctx context.Context) error {
	const op = "config.(Config).Validate"
	var merr *multierror.Error
	if c.ListenAddr == "" {
		merr = multierror.Append(merr, errors.New(ctx, errors.InvalidParameter, op, "missing listen address"))
	}
	if c.JwtSecret == "" {
		merr = multierror.Append(merr, errors.New(ctx, errors.InvalidParameter, op, "missing jwt secret"))
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		merr = multierror.Append(merr, errors.New(ctx, errors.InvalidParameter, op, "unknown log level "+c.LogLevel))
	}
	if c.ShutdownGrace <= 0 {
		merr = multierror.Append(merr, errors.New(ctx, errors.InvalidParameter, op, "shutdown grace must be positive"))
	}
	return merr.ErrorOrNil()
}
