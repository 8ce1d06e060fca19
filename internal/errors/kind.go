// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

// Kind specifies the kind of error (unknown, parameter, authorization, etc.).
type Kind uint32

const (
	Other Kind = iota
	Parameter
	Authorization
	Integrity
	Resolution
)

func (e Kind) String() string {
	return [...]string{
		"unknown",
		"parameter violation",
		"authorization violation",
		"integrity violation",
		"resolution failure",
	}[e]
}
