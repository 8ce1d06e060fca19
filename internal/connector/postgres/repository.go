// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package postgres provides the pgx-backed connector repository used by the
// daemon when a database URL is configured.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the connector table DDL, applied by Migrate.
const Schema = `
create table if not exists hub_connector (
    id text primary key,
    owner text,
    active bool not null default false,
    trusted bool not null default false,
    params jsonb,
    connection_settings jsonb not null,
    capabilities jsonb not null,
    create_time timestamptz not null default now(),
    update_time timestamptz not null default now()
);
create index if not exists hub_connector_owner_ix on hub_connector (owner);
`

// Repository is a pgx-backed connector.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository over the given pool.
func New(ctx context.Context, pool *pgxpool.Pool) (*Repository, error) {
	const op = "postgres.New"
	if pool == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing pool")
	}
	return &Repository{pool: pool}, nil
}

// Migrate applies the connector schema.
func (r *Repository) Migrate(ctx context.Context) error {
	const op = "postgres.(Repository).Migrate"
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("applying schema"))
	}
	return nil
}

// CreateConnector persists the connector and returns the written record.
func (r *Repository) CreateConnector(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	const op = "postgres.(Repository).CreateConnector"
	if c == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector")
	}
	if err := connector.ValidateId(ctx, c.Id); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	params, settings, caps, err := marshalDocs(ctx, c)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}

	now := time.Now().UTC()
	_, err = r.pool.Exec(ctx,
		`insert into hub_connector
		   (id, owner, active, trusted, params, connection_settings, capabilities, create_time, update_time)
		 values ($1, nullif($2, ''), $3, $4, $5, $6, $7, $8, $8)`,
		c.Id, c.Owner, c.Active, c.Trusted, params, settings, caps, now)
	if err != nil {
		if errors.IsUniqueError(err) {
			return nil, errors.New(ctx, errors.NotUnique, op, "connector "+c.Id+" already exists")
		}
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	return r.LookupConnector(ctx, c.Id)
}

// LookupConnector returns the connector with the given id.
func (r *Repository) LookupConnector(ctx context.Context, id string) (*connector.Connector, error) {
	const op = "postgres.(Repository).LookupConnector"
	if id == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector id")
	}
	row := r.pool.QueryRow(ctx,
		`select id, coalesce(owner, ''), active, trusted, params, connection_settings, capabilities, create_time, update_time
		   from hub_connector where id = $1`, id)
	c, err := scanConnector(ctx, row.Scan)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+id+" not found")
		}
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	return c, nil
}

// ListConnectors returns connectors ordered by id, restricted by WithOwner
// or WithIds when given.
func (r *Repository) ListConnectors(ctx context.Context, opt ...connector.Option) ([]*connector.Connector, error) {
	const op = "postgres.(Repository).ListConnectors"
	opts := connector.GetOpts(opt...)

	query := `select id, coalesce(owner, ''), active, trusted, params, connection_settings, capabilities, create_time, update_time
		from hub_connector`
	var args []any
	switch {
	case len(opts.WithIds) > 0:
		query += ` where id = any($1)`
		args = append(args, opts.WithIds)
	case opts.WithOwner != "":
		query += ` where owner = $1`
		args = append(args, opts.WithOwner)
	}
	query += ` order by id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	defer rows.Close()

	var ret []*connector.Connector
	for rows.Next() {
		c, err := scanConnector(ctx, rows.Scan)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
		}
		ret = append(ret, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	return ret, nil
}

// ReplaceConnector overwrites the stored connector with the same id.
func (r *Repository) ReplaceConnector(ctx context.Context, c *connector.Connector) (*connector.Connector, error) {
	const op = "postgres.(Repository).ReplaceConnector"
	if c == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector")
	}
	if c.Id == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connector id")
	}
	params, settings, caps, err := marshalDocs(ctx, c)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}

	tag, err := r.pool.Exec(ctx,
		`update hub_connector
		    set owner = nullif($2, ''), active = $3, trusted = $4, params = $5,
		        connection_settings = $6, capabilities = $7, update_time = $8
		  where id = $1`,
		c.Id, c.Owner, c.Active, c.Trusted, params, settings, caps, time.Now().UTC())
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+c.Id+" not found")
	}
	return r.LookupConnector(ctx, c.Id)
}

// DeleteConnector removes the connector and returns the deleted record.
func (r *Repository) DeleteConnector(ctx context.Context, id string) (*connector.Connector, error) {
	const op = "postgres.(Repository).DeleteConnector"
	c, err := r.LookupConnector(ctx, id)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	tag, err := r.pool.Exec(ctx, `delete from hub_connector where id = $1`, id)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.New(ctx, errors.RecordNotFound, op, "connector "+id+" not found")
	}
	return c, nil
}

func marshalDocs(ctx context.Context, c *connector.Connector) (params, settings, caps []byte, err error) {
	const op = "postgres.marshalDocs"
	if c.Params != nil {
		if params, err = json.Marshal(c.Params); err != nil {
			return nil, nil, nil, errors.New(ctx, errors.InvalidParameter, op, "marshalling params", errors.WithWrap(err))
		}
	}
	if settings, err = json.Marshal(c.ConnectionSettings); err != nil {
		return nil, nil, nil, errors.New(ctx, errors.InvalidParameter, op, "marshalling connection settings", errors.WithWrap(err))
	}
	if caps, err = json.Marshal(c.Capabilities); err != nil {
		return nil, nil, nil, errors.New(ctx, errors.InvalidParameter, op, "marshalling capabilities", errors.WithWrap(err))
	}
	return params, settings, caps, nil
}

func scanConnector(ctx context.Context, scan func(...any) error) (*connector.Connector, error) {
	const op = "postgres.scanConnector"
	var c connector.Connector
	var params, settings, caps []byte
	if err := scan(&c.Id, &c.Owner, &c.Active, &c.Trusted, &params, &settings, &caps, &c.CreateTime, &c.UpdateTime); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.New(ctx, errors.RecordNotFound, op, "no rows")
		}
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &c.Params); err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unmarshalling params"))
		}
	}
	if err := json.Unmarshal(settings, &c.ConnectionSettings); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unmarshalling connection settings"))
	}
	if err := json.Unmarshal(caps, &c.Capabilities); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unmarshalling capabilities"))
	}
	return &c, nil
}
