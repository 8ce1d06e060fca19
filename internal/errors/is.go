// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueError returns a boolean indicating whether the error is known to
// report a unique constraint violation.
func IsUniqueError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		if domainErr.Code == NotUnique {
			return true
		}
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if pgError.Code == "23505" { // unique_violation
			return true
		}
	}

	return false
}

// IsNotFoundError returns a boolean indicating whether the error is known to
// report a record-not-found condition.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		if domainErr.Code == RecordNotFound {
			return true
		}
	}

	return errors.Is(err, pgx.ErrNoRows)
}

// IsCheckConstraintError returns a boolean indicating whether the error is
// known to report a check constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		if domainErr.Code == CheckConstraint {
			return true
		}
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if pgError.Code == "23514" { // check_violation
			return true
		}
	}

	return false
}

// IsNotNullError returns a boolean indicating whether the error is known
// to report a not-null constraint violation.
func IsNotNullError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		if domainErr.Code == NotNull {
			return true
		}
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if pgError.Code == "23502" { // not_null_violation
			return true
		}
	}

	return false
}

// IsForbiddenError returns a boolean indicating whether the error reports an
// authorization denial.
func IsForbiddenError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		return domainErr.Code == Forbidden
	}
	return false
}

// IsMalformedGrantError returns a boolean indicating whether the error
// reports a structurally invalid rights matrix.
func IsMalformedGrantError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		return domainErr.Code == MalformedGrant
	}
	return false
}

// IsResolutionError returns a boolean indicating whether the error reports
// that rights resolution could not complete.  A denial is not a resolution
// error; the two must stay distinguishable for callers.
func IsResolutionError(err error) bool {
	if err == nil {
		return false
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		return domainErr.Code == ResolutionFailure
	}
	return false
}
