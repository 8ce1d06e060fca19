// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package action defines the types of actions subject to authorization.
package action

// Type defines a type for the authorizable actions of the hub. The string
// forms are the action names carried in credential rights matrices.
type Type int

const (
	Unknown          Type = 0
	ReadFeatures     Type = 1
	ManageSpaces     Type = 2
	AccessConnectors Type = 3
	ManageConnectors Type = 4
	ManagePackages   Type = 5
)

var Map = map[string]Type{
	"readFeatures":     ReadFeatures,
	"manageSpaces":     ManageSpaces,
	"accessConnectors": AccessConnectors,
	"manageConnectors": ManageConnectors,
	"managePackages":   ManagePackages,
}

func (a Type) String() string {
	return [...]string{
		"unknown",
		"readFeatures",
		"manageSpaces",
		"accessConnectors",
		"manageConnectors",
		"managePackages",
	}[a]
}
