// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package perms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/types/action"
)

// ParseActionMatrix decodes the credential wire form of a rights matrix,
// e.g. {"manageConnectors":[{"owner":"alice","id":"*"}]}, into an
// ActionMatrix.  Structurally invalid input (non-object values, non-string
// attribute values) yields a MalformedGrant error.  Unknown action names are
// dropped: a grant we do not understand can only ever deny more, never
// grant more, so skipping is safe and keeps older tokens working.
func ParseActionMatrix(ctx context.Context, raw []byte) (ActionMatrix, error) {
	const op = "perms.ParseActionMatrix"
	if len(raw) == 0 {
		return nil, errors.New(ctx, errors.MalformedGrant, op, "missing rights matrix")
	}
	var wire map[string][]map[string]string
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.New(ctx, errors.MalformedGrant, op, "invalid rights matrix", errors.WithWrap(err))
	}

	matrix := make(ActionMatrix, len(wire))
	for name, maps := range wire {
		a, ok := action.Map[name]
		if !ok {
			continue
		}
		matrix[a] = make([]AttributeMap, 0, len(maps))
		for _, attrs := range maps {
			matrix[a] = append(matrix[a], attributeMapFromWire(attrs))
		}
	}
	return matrix, nil
}

// attributeMapFromWire converts a decoded JSON object into an AttributeMap
// with a canonical attribute order: owner, id, then any remaining keys
// sorted.  JSON objects carry no order, so a canonical one keeps matrices
// comparable in tests and stable in events.
func attributeMapFromWire(attrs map[string]string) AttributeMap {
	ret := make(AttributeMap, 0, len(attrs))
	if v, ok := attrs[string(KeyOwner)]; ok {
		ret = append(ret, Attribute{Key: KeyOwner, Value: v})
	}
	if v, ok := attrs[string(KeyId)]; ok {
		ret = append(ret, Attribute{Key: KeyId, Value: v})
	}
	rest := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == string(KeyOwner) || k == string(KeyId) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		ret = append(ret, Attribute{Key: Key(k), Value: attrs[k]})
	}
	return ret
}

// MarshalJSON renders the matrix in its wire form with action names as keys,
// in deterministic action order.
func (m ActionMatrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range sortedActions(m) {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(a.String())
		if err != nil {
			return nil, err
		}
		maps, err := json.Marshal(m[a])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(maps)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the matrix in its wire form, for events and test failures.
func (m ActionMatrix) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", map[action.Type][]AttributeMap(m))
	}
	return string(b)
}
