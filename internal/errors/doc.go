// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
Package errors provides the geohub domain error type and its
supporting Codes, Kinds and Ops.

Errors carry the operation that raised them, an optional message and
a unique Code.  Callers test errors with the Is* predicates or by
unwrapping to *Err, never by matching strings.  The one string format
produced, "op: msg: kind: error #code", is stable and asserted in
tests.
*/
package errors
