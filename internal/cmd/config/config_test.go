// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GEOHUB_JWT_SECRET", "test-secret")
		c, err := Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, ":8080", c.ListenAddr)
		assert.Equal(t, "info", c.LogLevel)
		assert.Equal(t, 15*time.Second, c.ShutdownGrace)
		assert.Empty(t, c.DatabaseUrl)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GEOHUB_JWT_SECRET", "test-secret")
		t.Setenv("GEOHUB_LISTEN_ADDR", "127.0.0.1:9200")
		t.Setenv("GEOHUB_DATABASE_URL", "postgres://geohub@localhost/geohub")
		t.Setenv("GEOHUB_LOG_LEVEL", "debug")
		t.Setenv("GEOHUB_SHUTDOWN_GRACE", "1m")
		c, err := Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9200", c.ListenAddr)
		assert.Equal(t, "postgres://geohub@localhost/geohub", c.DatabaseUrl)
		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, time.Minute, c.ShutdownGrace)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing jwt secret")
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("GEOHUB_JWT_SECRET", "test-secret")
		t.Setenv("GEOHUB_LOG_LEVEL", "loud")
		_, err := Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown log level loud")
	})
}

func Test_Validate(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()

	// every problem is reported, not just the first
	c := &Config{}
	err := c.Validate(ctx)
	require.Error(err)
	assert.Contains(err.Error(), "missing listen address")
	assert.Contains(err.Error(), "missing jwt secret")
	assert.Contains(err.Error(), "unknown log level")
	assert.Contains(err.Error(), "shutdown grace must be positive")
}
