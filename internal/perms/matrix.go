// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package perms

import (
	"sort"

	"github.com/geohub-io/geohub/internal/types/action"
)

// ActionMatrix maps an action to the list of alternative AttributeMaps that
// grant (or require) it.  Multiple maps under one action are a logical OR;
// attributes within one map are a logical AND.  An action with an empty list
// grants nothing and requires nothing.
//
// A matrix plays one of two roles: a granted matrix derived once from a
// caller's credential and read-only thereafter, or a requested matrix built
// freshly per call and discarded after evaluation.
type ActionMatrix map[action.Type][]AttributeMap

// Grant appends an AttributeMap to the list for the given action and returns
// the matrix for chaining.  Duplicates are harmless; call sites avoid them
// by construction.
func (m ActionMatrix) Grant(a action.Type, attrs AttributeMap) ActionMatrix {
	m[a] = append(m[a], attrs)
	return m
}

// ManageConnectors appends attribute maps under the manageConnectors action.
func (m ActionMatrix) ManageConnectors(attrs ...AttributeMap) ActionMatrix {
	for _, a := range attrs {
		m.Grant(action.ManageConnectors, a)
	}
	return m
}

// Result provides the outcome of evaluating a requested matrix against a
// granted matrix.  When not authorized, FailedAction names the first action
// (in deterministic order) whose requirements the granted matrix could not
// cover.
type Result struct {
	Authorized   bool
	FailedAction action.Type
}

// Satisfies determines whether this (granted) matrix covers every
// requirement of the requested matrix: for each action present in requested,
// every requested AttributeMap must be matched by at least one of the
// granted AttributeMaps for that action.  Actions absent from requested, or
// present with an empty list, are vacuously satisfied.  The check is pure
// and defaults to deny: an action requested but absent from the granted
// matrix fails unless its requirement list is empty.
func (m ActionMatrix) Satisfies(requested ActionMatrix) Result {
	for _, a := range sortedActions(requested) {
		granted := m[a]
		for _, required := range requested[a] {
			var covered bool
			for _, g := range granted {
				if g.Matches(required) {
					covered = true
					break
				}
			}
			if !covered {
				return Result{FailedAction: a}
			}
		}
	}
	return Result{Authorized: true}
}

func sortedActions(m ActionMatrix) []action.Type {
	actions := make([]action.Type, 0, len(m))
	for a := range m {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
