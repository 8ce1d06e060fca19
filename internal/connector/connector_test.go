// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package connector

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name      string
		id        string
		opts      []Option
		want      *Connector
		wantErr   bool
		errResult string
	}{
		{
			name: "valid with options",
			id:   "psql-1",
			opts: []Option{
				WithOwner("alice"),
				WithActive(true),
				WithTrusted(true),
				WithParams(map[string]any{"ecps": "encrypted"}),
				WithConnectionSettings(ConnectionSettings{MinConnections: 2, MaxConnections: 64}),
				WithCapabilities(Capabilities{PropertySearch: true}),
			},
			want: &Connector{
				Id:                 "psql-1",
				Owner:              "alice",
				Active:             true,
				Trusted:            true,
				Params:             map[string]any{"ecps": "encrypted"},
				ConnectionSettings: ConnectionSettings{MinConnections: 2, MaxConnections: 64},
				Capabilities:       Capabilities{PropertySearch: true},
			},
		},
		{
			name: "valid ownerless",
			id:   "global-backend",
			want: &Connector{Id: "global-backend"},
		},
		{
			name:      "empty id",
			id:        "",
			wantErr:   true,
			errResult: "connector.New: id must be 1-64 word characters: parameter violation: error #101",
		},
		{
			name:      "id with slash",
			id:        "a/b",
			wantErr:   true,
			errResult: "connector.New: id must be 1-64 word characters: parameter violation: error #101",
		},
		{
			name:      "id too long",
			id:        "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc",
			wantErr:   true,
			errResult: "connector.New: id must be 1-64 word characters: parameter violation: error #101",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := New(ctx, tt.id, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errResult, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func Test_Clone(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	ctx := context.Background()
	orig, err := New(ctx, "psql", WithOwner("alice"), WithParams(map[string]any{"ecps": "v1"}))
	require.NoError(err)

	cloned := orig.Clone()
	assert.Empty(cmp.Diff(orig, cloned))

	// params must not be aliased
	cloned.Params["ecps"] = "v2"
	assert.Equal("v1", orig.Params["ecps"])
}

func Test_Patch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	base := func(t *testing.T) *Connector {
		t.Helper()
		c, err := New(ctx, "psql",
			WithOwner("alice"),
			WithActive(true),
			WithParams(map[string]any{"ecps": "v1"}),
			WithConnectionSettings(ConnectionSettings{MinConnections: 2, MaxConnections: 64}),
		)
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name      string
		patch     string
		chk       func(*testing.T, *Connector)
		wantErr   bool
		errResult string
	}{
		{
			name:  "single field",
			patch: `{"active":false}`,
			chk: func(t *testing.T, got *Connector) {
				assert.False(t, got.Active)
				assert.Equal(t, "alice", got.Owner)
				assert.Equal(t, 64, got.ConnectionSettings.MaxConnections)
			},
		},
		{
			name:  "nested object merges per field",
			patch: `{"connectionSettings":{"maxConnections":128}}`,
			chk: func(t *testing.T, got *Connector) {
				assert.Equal(t, 128, got.ConnectionSettings.MaxConnections)
				assert.Equal(t, 2, got.ConnectionSettings.MinConnections)
			},
		},
		{
			name:  "params entries replace",
			patch: `{"params":{"ecps":"v2"}}`,
			chk: func(t *testing.T, got *Connector) {
				assert.Equal(t, "v2", got.Params["ecps"])
			},
		},
		{
			name:  "same id is allowed",
			patch: `{"id":"psql","active":false}`,
			chk: func(t *testing.T, got *Connector) {
				assert.False(t, got.Active)
			},
		},
		{
			name:      "empty patch",
			patch:     "",
			wantErr:   true,
			errResult: "connector.(Connector).Patch: missing patch document: parameter violation: error #100",
		},
		{
			name:      "invalid json",
			patch:     `{"active":`,
			wantErr:   true,
			errResult: "connector.(Connector).Patch: invalid patch document: parameter violation: error #100",
		},
		{
			name:      "id change rejected",
			patch:     `{"id":"other"}`,
			wantErr:   true,
			errResult: "connector.(Connector).Patch: patch must not change the connector id: parameter violation: error #100",
		},
		{
			name:      "owner change rejected",
			patch:     `{"owner":"mallory"}`,
			wantErr:   true,
			errResult: "connector.(Connector).Patch: patch must not change the connector owner: parameter violation: error #100",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			orig := base(t)
			got, err := orig.Patch(ctx, []byte(tt.patch))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errResult)
				return
			}
			require.NoError(t, err)
			// patching never mutates the receiver
			assert.True(t, orig.Active)
			tt.chk(t, got)
		})
	}
}
