// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package authz

import (
	"context"
	"testing"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/perms"
	"github.com/geohub-io/geohub/internal/types/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Evaluate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name      string
		granted   perms.ActionMatrix
		requested perms.ActionMatrix
		errResult string
	}{
		{
			name:      "wildcard grant covers owned connector",
			granted:   perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("alice", perms.AnyValue)),
			requested: perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("alice", "conn-1")),
		},
		{
			name:      "wildcard grant denies foreign connector",
			granted:   perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("alice", perms.AnyValue)),
			requested: perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("bob", "conn-2")),
			errResult: "authz.Evaluate: insufficient rights for manageConnectors: authorization violation: error #300",
		},
		{
			name:      "id-scoped grant bypasses ownership",
			granted:   perms.ActionMatrix{}.ManageConnectors(perms.ForId("psql")),
			requested: perms.ActionMatrix{}.ManageConnectors(perms.ForIdValues("carol", "psql")),
		},
		{
			name:      "nil granted matrix denies",
			granted:   nil,
			requested: perms.ActionMatrix{}.ManageConnectors(perms.ForId("conn-1")),
			errResult: "authz.Evaluate: insufficient rights for manageConnectors: authorization violation: error #300",
		},
		{
			name:      "nil granted matrix allows a vacuous request",
			granted:   nil,
			requested: perms.ActionMatrix{},
		},
		{
			name:      "empty requested map list is vacuously granted",
			granted:   perms.ActionMatrix{},
			requested: perms.ActionMatrix{action.ManageConnectors: nil},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Evaluate(ctx, tt.granted, tt.requested)
			if tt.errResult != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errResult, err.Error())
				assert.True(t, errors.IsForbiddenError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
