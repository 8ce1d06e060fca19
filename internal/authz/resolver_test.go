// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package authz

import (
	"context"
	"fmt"
	"testing"

	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/connector/inmem"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/perms"
	"github.com/geohub-io/geohub/internal/types/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// erroringLookup fails lookups for ids in its fail set and delegates the
// rest to the wrapped repository.
type erroringLookup struct {
	wrapped OwnerLookup
	fail    map[string]bool
}

func (l *erroringLookup) LookupConnector(ctx context.Context, id string) (*connector.Connector, error) {
	if l.fail[id] {
		return nil, errors.New(ctx, errors.Io, "testing.(erroringLookup).LookupConnector", "store unavailable")
	}
	return l.wrapped.LookupConnector(ctx, id)
}

func testRepo(t *testing.T, connectors ...*connector.Connector) *inmem.Repository {
	t.Helper()
	repo := inmem.New()
	for _, c := range connectors {
		_, err := repo.CreateConnector(context.Background(), c)
		require.NoError(t, err)
	}
	return repo
}

func testConnector(t *testing.T, id, owner string) *connector.Connector {
	t.Helper()
	c, err := connector.New(context.Background(), id, connector.WithOwner(owner))
	require.NoError(t, err)
	return c
}

func Test_ResolveManageRights(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	repo := testRepo(t,
		testConnector(t, "conn-1", "alice"),
		testConnector(t, "conn-2", "bob"),
		testConnector(t, "shared", ""),
	)

	tests := []struct {
		name         string
		callerId     string
		connectorIds []string
		errResult    string
		result       perms.ActionMatrix
	}{
		{
			name:      "missing caller id",
			errResult: "authz.(Resolver).ResolveManageRights: missing caller id: parameter violation: error #100",
		},
		{
			name:         "existing owned connector",
			callerId:     "alice",
			connectorIds: []string{"conn-1"},
			result:       perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("alice", "conn-1")),
		},
		{
			name:         "ownerless connector omits the owner constraint",
			callerId:     "alice",
			connectorIds: []string{"shared"},
			result:       perms.ActionMatrix{}.ManageConnectors(perms.ForId("shared")),
		},
		{
			name:         "missing connector falls back to prospective owner",
			callerId:     "carol",
			connectorIds: []string{"new-conn"},
			result:       perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("carol", "new-conn")),
		},
		{
			name:         "multiple connectors compose",
			callerId:     "alice",
			connectorIds: []string{"conn-1", "conn-2", "shared", "new-conn"},
			result: perms.ActionMatrix{}.ManageConnectors(
				perms.ForIdValues("alice", "conn-1"),
				perms.ForIdValues("bob", "conn-2"),
				perms.ForId("shared"),
				perms.ForIdValues("alice", "new-conn"),
			),
		},
		{
			name:         "duplicate ids contribute once",
			callerId:     "alice",
			connectorIds: []string{"conn-1", "conn-1", "conn-1"},
			result:       perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("alice", "conn-1")),
		},
		{
			name:         "no target connectors yields an empty composite",
			callerId:     "alice",
			connectorIds: nil,
			result:       perms.ActionMatrix{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resolver, err := NewResolver(ctx, repo)
			require.NoError(t, err)
			got, err := resolver.ResolveManageRights(ctx, tt.callerId, tt.connectorIds)
			if tt.errResult != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errResult, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.result, got)
		})
	}
}

func Test_ResolveManageRightsFailFast(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := testRepo(t,
		testConnector(t, "conn-1", "alice"),
		testConnector(t, "conn-3", "alice"),
	)
	lookup := &erroringLookup{wrapped: repo, fail: map[string]bool{"conn-2": true}}

	resolver, err := NewResolver(ctx, lookup)
	require.NoError(err)

	got, err := resolver.ResolveManageRights(ctx, "alice", []string{"conn-1", "conn-2", "conn-3"})
	require.Error(err)
	assert.Nil(got)
	assert.True(errors.IsResolutionError(err))
	assert.False(errors.IsForbiddenError(err))
	assert.False(errors.IsNotFoundError(err))
}

func Test_ResolveManageRightsFanOut(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	repo := inmem.New()
	var ids []string
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("conn-%d", i)
		ids = append(ids, id)
		if i%2 == 0 {
			_, err := repo.CreateConnector(ctx, testConnector(t, id, "alice"))
			require.NoError(err)
		}
	}

	resolver, err := NewResolver(ctx, repo)
	require.NoError(err)

	got, err := resolver.ResolveManageRights(ctx, "bob", ids)
	require.NoError(err)

	// every id must contribute exactly one attribute map, join before read
	maps := got[action.ManageConnectors]
	require.Len(maps, 100)
	for i, attrs := range maps {
		id, ok := attrs.Get(perms.KeyId)
		require.True(ok)
		assert.Equal(ids[i], id)
		owner, ok := attrs.Get(perms.KeyOwner)
		require.True(ok)
		if i%2 == 0 {
			assert.Equal("alice", owner)
		} else {
			assert.Equal("bob", owner)
		}
	}
}

func Test_ResolveManageAllRights(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	resolver, err := NewResolver(ctx, inmem.New())
	require.NoError(err)

	got, err := resolver.ResolveManageAllRights(ctx, "alice")
	require.NoError(err)
	assert.Equal(perms.ActionMatrix{}.ManageConnectors(perms.ForOwner("alice")), got)

	_, err = resolver.ResolveManageAllRights(ctx, "")
	require.Error(err)
	assert.Equal("authz.(Resolver).ResolveManageAllRights: missing caller id: parameter violation: error #100", err.Error())
}
