// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package authz

import (
	"context"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/perms"
)

// Evaluate compares the caller's granted matrix against the requested
// matrix and returns nil when every requirement is covered, or a
// Forbidden-coded error naming the first unsatisfied action.  This is the
// single choke point for authorization decisions: pure, no I/O, testable
// with hand-built matrices.  A nil granted matrix denies everything a
// non-vacuous request requires.
func Evaluate(ctx context.Context, granted, requested perms.ActionMatrix) error {
	const op = "authz.Evaluate"
	result := granted.Satisfies(requested)
	if !result.Authorized {
		return errors.New(ctx, errors.Forbidden, op,
			"insufficient rights for "+result.FailedAction.String())
	}
	return nil
}
