// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

// Code specifies a code for the error.
type Code uint32

// String will return the Code's Info.Message
func (c Code) String() string {
	return c.Info().Message
}

// Info will look up the Code's Info.  If the Info is not found, it will return
// Info for an Unknown Code.
func (c Code) Info() Info {
	if info, ok := errorCodeInfo[c]; ok {
		return info
	}
	return errorCodeInfo[Unknown]
}

const (
	Unknown Code = 0 // Unknown will be equal to a zero value for Codes

	// General function errors are reserved Codes 100-999
	InvalidParameter   Code = 100 // InvalidParameter represents an invalid parameter for an operation
	InvalidConnectorId Code = 101 // InvalidConnectorId represents an invalid connector id
	MalformedGrant     Code = 110 // MalformedGrant represents a structurally invalid rights matrix in a credential

	// Authorization errors are reserved Codes 300-399
	Forbidden       Code = 300 // Forbidden represents insufficient rights for the requested action
	Unauthenticated Code = 301 // Unauthenticated represents a missing or invalid credential

	// Infrastructure errors are reserved Codes 500-599
	ResolutionFailure Code = 500 // ResolutionFailure represents a failed resource-rights resolution
	Internal          Code = 501 // Internal represents an unclassified system failure
	Io                Code = 502 // Io represents an error during an io operation

	// DB errors are reserved Codes from 1000-1999
	CheckConstraint Code = 1000 // CheckConstraint represents a check constraint error
	NotNull         Code = 1001 // NotNull represents a value must not be null error
	NotUnique       Code = 1002 // NotUnique represents a value must be unique error
	RecordNotFound  Code = 1100 // RecordNotFound represents that a record/row was not found matching the criteria
	MultipleRecords Code = 1101 // MultipleRecords represents that multiple records/rows were found matching the criteria
)
