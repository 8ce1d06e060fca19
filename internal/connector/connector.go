// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package connector provides the connector domain type and the repository
// contract for connector persistence.  A connector is a registered storage
// backend of the hub, keyed by a caller-chosen id and optionally owned by
// the tenant that registered it.  Ownerless connectors are global resources
// which require explicit id-scoped grants to manage.
package connector

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/geohub-io/geohub/internal/errors"
)

// idRegexp constrains caller-chosen connector ids.
var idRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ConnectionSettings holds the pooling bounds a connector advertises.
type ConnectionSettings struct {
	MinConnections int `json:"minConnections"`
	MaxConnections int `json:"maxConnections"`
}

// Capabilities describes optional features a connector backend supports.
type Capabilities struct {
	PropertySearch               bool `json:"propertySearch"`
	PreserializedResponseSupport bool `json:"preserializedResponseSupport"`
}

// Connector is the domain type for a registered storage backend.
type Connector struct {
	// Id is the caller-chosen identifier, unique across the hub.
	Id string `json:"id"`

	// Owner is the tenant that registered the connector.  Empty for global
	// connectors, which only explicit id-scoped grants may manage.
	Owner string `json:"owner,omitempty"`

	Active  bool `json:"active"`
	Trusted bool `json:"trusted"`

	// Params carries backend-specific configuration, opaque to the hub.
	Params map[string]any `json:"params,omitempty"`

	ConnectionSettings ConnectionSettings `json:"connectionSettings"`
	Capabilities       Capabilities       `json:"capabilities"`

	CreateTime time.Time `json:"createTime,omitzero"`
	UpdateTime time.Time `json:"updateTime,omitzero"`
}

// New creates a Connector with the given id and options.
func New(ctx context.Context, id string, opt ...Option) (*Connector, error) {
	const op = "connector.New"
	if !idRegexp.MatchString(id) {
		return nil, errors.New(ctx, errors.InvalidConnectorId, op, "id must be 1-64 word characters")
	}
	opts := GetOpts(opt...)
	return &Connector{
		Id:                 id,
		Owner:              opts.WithOwner,
		Active:             opts.WithActive,
		Trusted:            opts.WithTrusted,
		Params:             opts.WithParams,
		ConnectionSettings: opts.WithConnectionSettings,
		Capabilities:       opts.WithCapabilities,
	}, nil
}

// ValidateId reports whether id is an acceptable connector id.
func ValidateId(ctx context.Context, id string) error {
	const op = "connector.ValidateId"
	if !idRegexp.MatchString(id) {
		return errors.New(ctx, errors.InvalidConnectorId, op, "id must be 1-64 word characters")
	}
	return nil
}

// Clone returns a deep copy of the connector.
func (c *Connector) Clone() *Connector {
	ret := *c
	if c.Params != nil {
		ret.Params = make(map[string]any, len(c.Params))
		for k, v := range c.Params {
			ret.Params[k] = v
		}
	}
	return &ret
}

// Patch returns a copy of the connector with the JSON patch document merged
// over it.  Fields present in the patch replace the connector's values;
// nested objects merge per field, arrays and params entries replace.  The
// patch may not change the id.
func (c *Connector) Patch(ctx context.Context, patch []byte) (*Connector, error) {
	const op = "connector.(Connector).Patch"
	if len(patch) == 0 {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing patch document")
	}
	ret := c.Clone()
	if err := json.Unmarshal(patch, ret); err != nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "invalid patch document", errors.WithWrap(err))
	}
	if ret.Id != c.Id {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "patch must not change the connector id")
	}
	if ret.Owner != c.Owner {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "patch must not change the connector owner")
	}
	return ret, nil
}
