// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package event provides structured eventing for the daemon: error, system
// and observation events routed through a hashicorp/eventlogger broker to
// JSON sinks, with an hclog fallback when no eventer is available.  The
// package-level Write* functions look up the Eventer in the context and
// never fail the caller's operation.
package event

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-uuid"
)

// Type represents the event's type.
type Type string

const (
	// ErrorType represents an error event.
	ErrorType Type = "error"

	// SystemType represents a system event.
	SystemType Type = "system"

	// ObservationType represents an observation event.
	ObservationType Type = "observation"
)

// Op represents the operation that wrote the event, e.g.
// "authz.(Service).AuthorizeManage".
type Op string

// RequestInfo identifies the inbound request an event belongs to.
type RequestInfo struct {
	Id       string `json:"id,omitempty"`
	Method   string `json:"method,omitempty"`
	Path     string `json:"path,omitempty"`
	ClientIp string `json:"client_ip,omitempty"`
	CallerId string `json:"caller_id,omitempty"`
}

type errorEvent struct {
	Op          Op           `json:"op"`
	Error       string       `json:"error"`
	Time        time.Time    `json:"time"`
	RequestInfo *RequestInfo `json:"request_info,omitempty"`
}

type sysEvent struct {
	Op          Op             `json:"op"`
	Msg         string         `json:"msg"`
	Data        map[string]any `json:"data,omitempty"`
	Time        time.Time      `json:"time"`
	RequestInfo *RequestInfo   `json:"request_info,omitempty"`
}

type observationEvent struct {
	Op          Op             `json:"op"`
	Msg         string         `json:"msg,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Time        time.Time      `json:"time"`
	RequestInfo *RequestInfo   `json:"request_info,omitempty"`
}

// NewId generates an id with the given prefix, for request ids and broker
// node ids.
func NewId(prefix string) (string, error) {
	const op = "event.NewId"
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", fmt.Errorf("%s: unable to generate id: %w", op, err)
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}
