// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package authz

import (
	"context"

	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/perms"
	"golang.org/x/sync/errgroup"
)

// OwnerLookup is the narrow persistence contract the resolver needs: the
// current record for a connector id, or a RecordNotFound-coded error when
// none exists.  Implementations must be safe to call concurrently for
// distinct ids.
type OwnerLookup interface {
	LookupConnector(ctx context.Context, id string) (*connector.Connector, error)
}

// Resolver builds requested rights matrices from the connectors an
// operation targets.
type Resolver struct {
	lookup OwnerLookup
}

// NewResolver creates a Resolver over the given lookup collaborator.
func NewResolver(ctx context.Context, lookup OwnerLookup) (*Resolver, error) {
	const op = "authz.NewResolver"
	if lookup == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing owner lookup")
	}
	return &Resolver{lookup: lookup}, nil
}

// ResolveManageRights returns the composite matrix of manage rights the
// given connector ids require.  Ids are deduplicated and resolved
// concurrently, one lookup per id, each writing only its own slot; the
// matrix is assembled only after every lookup has completed.  A lookup
// error other than not-found fails the whole resolution with a
// ResolutionFailure: an unresolved connector must never be silently
// skipped, since a skipped slot would shrink the requirement set.
func (r *Resolver) ResolveManageRights(ctx context.Context, callerId string, connectorIds []string) (perms.ActionMatrix, error) {
	const op = "authz.(Resolver).ResolveManageRights"
	if callerId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing caller id")
	}

	ids := dedupe(connectorIds)
	slots := make([]perms.AttributeMap, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			c, err := r.lookup.LookupConnector(gctx, id)
			switch {
			case err == nil && c.Owner != "":
				slots[i] = perms.ForIdValues(c.Owner, c.Id)
			case err == nil:
				// Ownerless connectors require an explicit id-scoped grant.
				slots[i] = perms.ForId(c.Id)
			case errors.IsNotFoundError(err):
				// The connector does not exist yet; the caller is its
				// prospective owner.
				slots[i] = perms.ForIdValues(callerId, id)
			default:
				return errors.Wrap(gctx, err, op,
					errors.WithCode(errors.ResolutionFailure),
					errors.WithMsg("resolving owner of connector "+id))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	requested := perms.ActionMatrix{}
	for _, attrs := range slots {
		requested.ManageConnectors(attrs)
	}
	return requested, nil
}

// ResolveManageAllRights returns the matrix a bulk operation with no target
// connectors requires: manage rights over the caller's own connectors.  The
// degenerate, synchronous case of ResolveManageRights, with no lookups.
func (r *Resolver) ResolveManageAllRights(ctx context.Context, callerId string) (perms.ActionMatrix, error) {
	const op = "authz.(Resolver).ResolveManageAllRights"
	if callerId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing caller id")
	}
	return perms.ActionMatrix{}.ManageConnectors(perms.ForOwner(callerId)), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	ret := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ret = append(ret, id)
	}
	return ret
}
