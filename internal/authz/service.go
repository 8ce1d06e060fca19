// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package authz

import (
	"context"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/event"
	"github.com/geohub-io/geohub/internal/perms"
)

// Identity is a decoded, already-validated caller credential: the tenant id
// and the rights matrix the credential grants.  Identities are threaded
// explicitly into every authorization call; nothing is read from ambient
// state.  The matrix is derived once per credential and read-only
// thereafter.
type Identity struct {
	// CallerId is the application/tenant identifier of the caller.
	CallerId string

	// Matrix is the granted rights matrix from the credential.
	Matrix perms.ActionMatrix
}

// Service combines the resolver and the evaluator into the authorization
// surface the request-handling layer consumes.
type Service struct {
	resolver *Resolver
}

// NewService creates a Service resolving connector ownership through the
// given lookup collaborator.
func NewService(ctx context.Context, lookup OwnerLookup) (*Service, error) {
	const op = "authz.NewService"
	resolver, err := NewResolver(ctx, lookup)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &Service{resolver: resolver}, nil
}

// AuthorizeManage decides whether the identity may manage the given
// connectors.  It returns nil when authorized, a Forbidden-coded error when
// rights are insufficient, and a ResolutionFailure-coded error when
// ownership could not be determined; callers must treat the last as a
// system error, not a denial.
func (s *Service) AuthorizeManage(ctx context.Context, ident Identity, connectorIds ...string) error {
	const op = "authz.(Service).AuthorizeManage"
	requested, err := s.resolver.ResolveManageRights(ctx, ident.CallerId, connectorIds)
	if err != nil {
		event.WriteError(ctx, op, err)
		return errors.Wrap(ctx, err, op)
	}
	if err := Evaluate(ctx, ident.Matrix, requested); err != nil {
		return errors.Wrap(ctx, err, op)
	}
	return nil
}

// AuthorizeManageAll decides whether the identity may run a bulk operation
// over its own connectors, e.g. listing them.  No connector lookups are
// involved.
func (s *Service) AuthorizeManageAll(ctx context.Context, ident Identity) error {
	const op = "authz.(Service).AuthorizeManageAll"
	requested, err := s.resolver.ResolveManageAllRights(ctx, ident.CallerId)
	if err != nil {
		return errors.Wrap(ctx, err, op)
	}
	if err := Evaluate(ctx, ident.Matrix, requested); err != nil {
		return errors.Wrap(ctx, err, op)
	}
	return nil
}
