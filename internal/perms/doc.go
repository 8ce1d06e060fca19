// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
Package perms provides the geohub rights engine: attribute maps, action
rights matrices and the containment test between them.

There are really only a few patterns of connector grants that ever occur:

  - owner=<aid>;id=*            (manage everything I own)
  - owner=<aid>;id=<connector>  (manage one connector I own)
  - id=<connector>              (manage one specific connector, any owner)

and the wildcard "*" may stand in for any single value.  A matrix maps an
action to a list of alternative attribute maps; one matching alternative per
required attribute map is sufficient.  This makes the containment check
simple; most of the work is synthesizing a reasonable requested matrix from
the connectors an operation touches, which lives in the authz package.
*/
package perms
