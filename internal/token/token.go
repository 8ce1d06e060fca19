// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package token decodes caller credentials into identities.  Signature and
// expiry validation are delegated to the jwt library; this package's own
// concern is extracting the tenant id and the granted rights matrix, which
// is derived once per credential and read-only thereafter.
package token

import (
	"context"
	"encoding/json"

	"github.com/geohub-io/geohub/internal/authz"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/perms"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the geohub JWT payload: the tenant id ("aid") and the user
// rights matrix ("urm") alongside the registered claims.
type Claims struct {
	Aid string          `json:"aid"`
	Urm json.RawMessage `json:"urm,omitempty"`
	jwt.RegisteredClaims
}

// Parse validates the raw token with the given keyfunc and decodes it into
// an Identity.  A token that fails signature or time validation yields an
// Unauthenticated-coded error; a token whose rights matrix is structurally
// invalid yields a MalformedGrant-coded error.  A token without a rights
// matrix is valid and grants nothing.
func Parse(ctx context.Context, raw string, keyfunc jwt.Keyfunc) (authz.Identity, error) {
	const op = "token.Parse"
	if raw == "" {
		return authz.Identity{}, errors.New(ctx, errors.Unauthenticated, op, "missing token")
	}
	if keyfunc == nil {
		return authz.Identity{}, errors.New(ctx, errors.InvalidParameter, op, "missing keyfunc")
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(raw, claims, keyfunc); err != nil {
		return authz.Identity{}, errors.New(ctx, errors.Unauthenticated, op, "invalid token", errors.WithWrap(err))
	}
	if claims.Aid == "" {
		return authz.Identity{}, errors.New(ctx, errors.Unauthenticated, op, "token has no aid claim")
	}

	matrix := perms.ActionMatrix{}
	if len(claims.Urm) > 0 {
		var err error
		matrix, err = perms.ParseActionMatrix(ctx, claims.Urm)
		if err != nil {
			return authz.Identity{}, errors.Wrap(ctx, err, op)
		}
	}
	return authz.Identity{
		CallerId: claims.Aid,
		Matrix:   matrix,
	}, nil
}
