// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package version

var (
	// GitCommit is the git commit that was compiled, filled in by the
	// build.
	GitCommit   string
	GitDescribe string

	// Version is the base version, overridden at build time for releases.
	Version = "0.1.0"

	// VersionPrerelease is set at build time, similarly to Version.
	VersionPrerelease string

	// VersionMetadata is set at build time.
	VersionMetadata string

	// BuildDate is the timestamp of the most recent commit.
	BuildDate string
)
