// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package perms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Key identifies an attribute within an AttributeMap.  The vocabulary is
// small and fixed; matching is key-exact and case-sensitive.
type Key string

const (
	// KeyOwner constrains the owner of a connector.
	KeyOwner Key = "owner"

	// KeyId constrains the id of a connector.
	KeyId Key = "id"
)

// AnyValue is the wildcard attribute value, matching any concrete value.
const AnyValue = "*"

// Attribute is a single named constraint.
type Attribute struct {
	Key   Key
	Value string
}

// AttributeMap is an ordered set of named constraints describing or
// requiring a connector's properties.  Keys within one map are unique.
// AttributeMaps are immutable after construction; WithValue returns a copy.
type AttributeMap []Attribute

// ForIdValues returns an AttributeMap constraining both owner and id,
// in that order.
func ForIdValues(owner, id string) AttributeMap {
	return AttributeMap{
		{Key: KeyOwner, Value: owner},
		{Key: KeyId, Value: id},
	}
}

// ForId returns an AttributeMap constraining only the connector id.  This is
// the shape used for ownerless connectors, which require an explicit
// id-scoped grant rather than any owner match.
func ForId(id string) AttributeMap {
	return AttributeMap{
		{Key: KeyId, Value: id},
	}
}

// ForOwner returns an AttributeMap constraining only the owner.
func ForOwner(owner string) AttributeMap {
	return AttributeMap{
		{Key: KeyOwner, Value: owner},
	}
}

// WithValue returns a copy of the map with the given attribute set,
// replacing any existing attribute with the same key.
func (m AttributeMap) WithValue(k Key, v string) AttributeMap {
	ret := make(AttributeMap, 0, len(m)+1)
	var replaced bool
	for _, a := range m {
		if a.Key == k {
			ret = append(ret, Attribute{Key: k, Value: v})
			replaced = true
			continue
		}
		ret = append(ret, a)
	}
	if !replaced {
		ret = append(ret, Attribute{Key: k, Value: v})
	}
	return ret
}

// Get returns the value for the given key and whether the key is present.
func (m AttributeMap) Get(k Key) (string, bool) {
	for _, a := range m {
		if a.Key == k {
			return a.Value, true
		}
	}
	return "", false
}

// Matches reports whether the candidate satisfies every constraint of this
// map: for each attribute present here, this map's value must be the
// wildcard, or the candidate must carry the same key with an equal value.
// A wildcard is satisfied even when the candidate lacks the key; a concrete
// value requires the key to be present.  Keys absent from this map are
// unconstrained.  Pure predicate, no side effects.
func (m AttributeMap) Matches(candidate AttributeMap) bool {
	for _, a := range m {
		if a.Value == AnyValue {
			continue
		}
		cv, ok := candidate.Get(a.Key)
		if !ok || a.Value != cv {
			return false
		}
	}
	return true
}

// MarshalJSON renders the map as a JSON object preserving attribute order.
func (m AttributeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(string(a.Key))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(a.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the map in its JSON form, for events and test failures.
func (m AttributeMap) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", []Attribute(m))
	}
	return string(b)
}
