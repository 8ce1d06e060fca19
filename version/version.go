// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package version carries the build's version identity, stamped in at
// compile time.
package version

import (
	"bytes"
	"fmt"
)

// Info holds the version identity of a build.
type Info struct {
	Revision          string `json:"revision,omitempty"`
	Version           string `json:"version,omitempty"`
	VersionPrerelease string `json:"version_prerelease,omitempty"`
	VersionMetadata   string `json:"version_metadata,omitempty"`
}

// Get returns the Info for the current build.
func Get() *Info {
	ver := Version
	rel := VersionPrerelease
	if GitDescribe != "" {
		ver = GitDescribe
	}
	if GitDescribe == "" && rel == "" && VersionPrerelease != "" {
		rel = "dev"
	}

	return &Info{
		Revision:          GitCommit,
		Version:           ver,
		VersionPrerelease: rel,
		VersionMetadata:   VersionMetadata,
	}
}

// VersionNumber returns the bare semantic version, with prerelease and
// metadata suffixes when set.
func (i *Info) VersionNumber() string {
	if Version == "unknown" && VersionPrerelease == "unknown" {
		return "(version unknown)"
	}

	version := i.Version
	if i.VersionPrerelease != "" {
		version = fmt.Sprintf("%s-%s", version, i.VersionPrerelease)
	}
	if i.VersionMetadata != "" {
		version = fmt.Sprintf("%s+%s", version, i.VersionMetadata)
	}
	return version
}

// FullVersionNumber returns the product-prefixed version string, optionally
// with the git revision.
func (i *Info) FullVersionNumber(rev bool) string {
	var versionString bytes.Buffer

	if Version == "unknown" && VersionPrerelease == "unknown" {
		return "GeoHub (version unknown)"
	}

	fmt.Fprintf(&versionString, "GeoHub v%s", i.Version)
	if i.VersionPrerelease != "" {
		fmt.Fprintf(&versionString, "-%s", i.VersionPrerelease)
	}
	if i.VersionMetadata != "" {
		fmt.Fprintf(&versionString, "+%s", i.VersionMetadata)
	}
	if rev && i.Revision != "" {
		fmt.Fprintf(&versionString, " (%s)", i.Revision)
	}

	return versionString.String()
}
