// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package inmem provides a mutex-guarded in-memory connector repository,
// used in tests and when the daemon runs without a database.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/errors"
)

// Repository is an in-memory connector.Repository.  Safe for concurrent
// use; records are cloned on the way in and out so callers can never alias
// stored state.
type Repository struct {
	mu         sync.RWMutex
	connectors map[string]*connector.Connector
}

// New creates an empty Repository.
func New() *Repository {
	return &Repository{
		connectors: make(map[string]*connector.Connector),
	}
}

// CreateConnector persists the connector and returns the written record.
func (r *Repository) CreateConnector(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	const op = "inmem.(Repository).CreateConnector"
	if c == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector")
	}
	if err := connector.ValidateId(ctx, c.Id); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connectors[c.Id]; ok {
		return nil, errors.New(ctx, errors.NotUnique, op, "connector "+c.Id+" already exists")
	}
	stored := c.Clone()
	stored.CreateTime = time.Now().UTC()
	stored.UpdateTime = stored.CreateTime
	r.connectors[c.Id] = stored
	return stored.Clone(), nil
}

// LookupConnector returns the connector with the given id.
func (r *Repository) LookupConnector(ctx context.Context, id string) (*connector.Connector, error) {
	const op = "inmem.(Repository).LookupConnector"
	if id == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector id")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[id]
	if !ok {
		return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+id+" not found")
	}
	return c.Clone(), nil
}

// ListConnectors returns connectors ordered by id, restricted by WithOwner
// or WithIds when given.  Unknown ids are skipped, not an error.
func (r *Repository) ListConnectors(ctx context.Context, opt ...connector.Option) ([]*connector.Connector, error) {
	opts := connector.GetOpts(opt...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ret []*connector.Connector
	switch {
	case len(opts.WithIds) > 0:
		for _, id := range opts.WithIds {
			if c, ok := r.connectors[id]; ok {
				ret = append(ret, c.Clone())
			}
		}
	default:
		for _, c := range r.connectors {
			if opts.WithOwner != "" && c.Owner != opts.WithOwner {
				continue
			}
			ret = append(ret, c.Clone())
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Id < ret[j].Id })
	return ret, nil
}

// ReplaceConnector overwrites the stored connector with the same id.
func (r *Repository) ReplaceConnector(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	const op = "inmem.(Repository).ReplaceConnector"
	if c == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector")
	}
	if c.Id == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.connectors[c.Id]
	if !ok {
		return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+c.Id+" not found")
	}
	stored := c.Clone()
	stored.CreateTime = prev.CreateTime
	stored.UpdateTime = time.Now().UTC()
	r.connectors[c.Id] = stored
	return stored.Clone(), nil
}

// DeleteConnector removes the connector and returns the deleted record.
func (r *Repository) DeleteConnector(ctx context.Context, id string) (*connector.Connector, error) {
	const op = "inmem.(Repository).DeleteConnector"
	if id == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connectors[id]
	if !ok {
		return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+id+" not found")
	}
	delete(r.connectors, id)
	return c, nil
}
