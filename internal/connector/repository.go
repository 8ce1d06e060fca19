// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package connector

import (
	"context"
)

// Repository is the contract connector stores implement.  All methods are
// ctx-first and safe for concurrent use.  Lookup and the write methods
// return a RecordNotFound-coded error when no connector has the given id;
// CreateConnector returns a NotUnique-coded error when the id is taken.
type Repository interface {
	// CreateConnector persists the connector and returns the written record.
	CreateConnector(ctx context.Context, c *Connector) (*Connector, error)

	// LookupConnector returns the connector with the given id.
	LookupConnector(ctx context.Context, id string) (*Connector, error)

	// ListConnectors returns connectors, optionally restricted with
	// WithOwner (connectors owned by a tenant) or WithIds (specific ids;
	// unknown ids are skipped, not an error).
	ListConnectors(ctx context.Context, opt ...Option) ([]*Connector, error)

	// ReplaceConnector overwrites the stored connector with the same id and
	// returns the written record.
	ReplaceConnector(ctx context.Context, c *Connector) (*Connector, error)

	// DeleteConnector removes the connector and returns the deleted record.
	DeleteConnector(ctx context.Context, id string) (*Connector, error)
}
