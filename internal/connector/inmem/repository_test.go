// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package inmem

import (
	"context"
	"testing"

	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnector(t *testing.T, id, owner string) *connector.Connector {
	t.Helper()
	c, err := connector.New(context.Background(), id, connector.WithOwner(owner), connector.WithActive(true))
	require.NoError(t, err)
	return c
}

func Test_CreateConnector(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := New()

	got, err := repo.CreateConnector(ctx, testConnector(t, "psql", "alice"))
	require.NoError(err)
	assert.Equal("psql", got.Id)
	assert.Equal("alice", got.Owner)
	assert.False(got.CreateTime.IsZero())
	assert.Equal(got.CreateTime, got.UpdateTime)

	// duplicate id
	_, err = repo.CreateConnector(ctx, testConnector(t, "psql", "bob"))
	require.Error(err)
	assert.True(errors.IsUniqueError(err))
	assert.Equal("inmem.(Repository).CreateConnector: connector psql already exists: integrity violation: error #1002", err.Error())

	// invalid id
	bad := testConnector(t, "psql", "alice")
	bad.Id = "not a valid id"
	_, err = repo.CreateConnector(ctx, bad)
	require.Error(err)

	// missing connector
	_, err = repo.CreateConnector(ctx, nil)
	require.Error(err)
}

func Test_LookupConnector(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := New()
	created, err := repo.CreateConnector(ctx, testConnector(t, "psql", "alice"))
	require.NoError(err)

	got, err := repo.LookupConnector(ctx, "psql")
	require.NoError(err)
	assert.Equal(created.Id, got.Id)
	assert.Equal(created.Owner, got.Owner)

	// returned record must not alias stored state
	got.Owner = "mallory"
	again, err := repo.LookupConnector(ctx, "psql")
	require.NoError(err)
	assert.Equal("alice", again.Owner)

	_, err = repo.LookupConnector(ctx, "no-such")
	require.Error(err)
	assert.True(errors.IsNotFoundError(err))

	_, err = repo.LookupConnector(ctx, "")
	require.Error(err)
}

func Test_ListConnectors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New()
	for _, c := range []*connector.Connector{
		testConnector(t, "psql", "alice"),
		testConnector(t, "dynamo", "alice"),
		testConnector(t, "s3", "bob"),
		testConnector(t, "global", ""),
	} {
		_, err := repo.CreateConnector(ctx, c)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		opts    []connector.Option
		wantIds []string
	}{
		{
			name:    "all ordered by id",
			wantIds: []string{"dynamo", "global", "psql", "s3"},
		},
		{
			name:    "by owner",
			opts:    []connector.Option{connector.WithOwner("alice")},
			wantIds: []string{"dynamo", "psql"},
		},
		{
			name:    "by ids skips unknown",
			opts:    []connector.Option{connector.WithIds("s3", "no-such", "psql")},
			wantIds: []string{"psql", "s3"},
		},
		{
			name:    "unknown owner is empty",
			opts:    []connector.Option{connector.WithOwner("nobody")},
			wantIds: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := repo.ListConnectors(ctx, tt.opts...)
			require.NoError(t, err)
			var gotIds []string
			for _, c := range got {
				c := c
				gotIds = append(gotIds, c.Id)
			}
			assert.Equal(t, tt.wantIds, gotIds)
		})
	}
}

func Test_ReplaceConnector(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := New()
	created, err := repo.CreateConnector(ctx, testConnector(t, "psql", "alice"))
	require.NoError(err)

	next := created.Clone()
	next.Active = false
	got, err := repo.ReplaceConnector(ctx, next)
	require.NoError(err)
	assert.False(got.Active)
	assert.Equal(created.CreateTime, got.CreateTime)
	assert.True(got.UpdateTime.After(got.CreateTime) || got.UpdateTime.Equal(got.CreateTime))

	_, err = repo.ReplaceConnector(ctx, testConnector(t, "no-such", "alice"))
	require.Error(err)
	assert.True(errors.IsNotFoundError(err))
}

func Test_DeleteConnector(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := New()
	_, err := repo.CreateConnector(ctx, testConnector(t, "psql", "alice"))
	require.NoError(err)

	got, err := repo.DeleteConnector(ctx, "psql")
	require.NoError(err)
	assert.Equal("psql", got.Id)

	_, err = repo.LookupConnector(ctx, "psql")
	require.Error(err)
	assert.True(errors.IsNotFoundError(err))

	_, err = repo.DeleteConnector(ctx, "psql")
	require.Error(err)
	assert.True(errors.IsNotFoundError(err))
}
