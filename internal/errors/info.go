// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

// Info contains details of the specific error code
type Info struct {
	// Kind specifies the kind of error (unknown, parameter, integrity, etc).
	Kind Kind

	// Message provides a default message for the error code
	Message string
}

// errorCodeInfo provides a map of unique Codes (IDs) to their
// corresponding Kind and a default Message.
var errorCodeInfo = map[Code]Info{
	Unknown: {
		Message: "unknown",
		Kind:    Other,
	},
	InvalidParameter: {
		Message: "invalid parameter",
		Kind:    Parameter,
	},
	InvalidConnectorId: {
		Message: "invalid connector id",
		Kind:    Parameter,
	},
	MalformedGrant: {
		Message: "malformed rights matrix",
		Kind:    Parameter,
	},
	Forbidden: {
		Message: "insufficient rights",
		Kind:    Authorization,
	},
	Unauthenticated: {
		Message: "missing or invalid credential",
		Kind:    Authorization,
	},
	ResolutionFailure: {
		Message: "rights resolution failed",
		Kind:    Resolution,
	},
	Internal: {
		Message: "internal failure",
		Kind:    Resolution,
	},
	Io: {
		Message: "error during io operation",
		Kind:    Resolution,
	},
	CheckConstraint: {
		Message: "constraint check failed",
		Kind:    Integrity,
	},
	NotNull: {
		Message: "must not be empty (null) violation",
		Kind:    Integrity,
	},
	NotUnique: {
		Message: "must be unique violation",
		Kind:    Integrity,
	},
	RecordNotFound: {
		Message: "record not found",
		Kind:    Integrity,
	},
	MultipleRecords: {
		Message: "multiple records",
		Kind:    Integrity,
	},
}
