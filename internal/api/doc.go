// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package api exposes connector management over HTTP.  Every route runs
// behind bearer-token authentication; handlers authorize through the authz
// service before touching the repository, so the transport layer itself
// never makes access decisions.
package api
