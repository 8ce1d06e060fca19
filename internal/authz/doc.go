// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
Package authz decides whether a caller may perform a management action on a
set of connectors.

The decision has two halves.  The Resolver turns the connector ids an
operation targets into a requested rights matrix, looking up each
connector's current owner concurrently and joining every lookup before the
matrix is read: an existing owned connector requires {owner:<owner>,
id:<id>}, an ownerless one requires the stricter {id:<id>}, and a connector
that does not exist yet requires {owner:<caller>, id:<id>} so that creation
can be authorized by "manage what I own".  Evaluate then compares the
requested matrix against the matrix granted by the caller's credential.

Every decision passes through Evaluate and the default is deny: a lookup
failure aborts the whole attempt with a ResolutionFailure rather than
shrinking the requirement set, and a requirement nothing covers yields a
Forbidden error naming the action.
*/
package authz
