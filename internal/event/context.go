// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package event

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

type key int

const (
	eventerKey key = iota
	requestInfoKey
)

// NewEventerContext will return a context containing a value of the
// provided Eventer.
func NewEventerContext(ctx context.Context, eventer *Eventer) (context.Context, error) {
	const op = "event.NewEventerContext"
	if ctx == nil {
		return nil, fmt.Errorf("%s: missing context", op)
	}
	if eventer == nil {
		return nil, fmt.Errorf("%s: missing eventer", op)
	}
	return context.WithValue(ctx, eventerKey, eventer), nil
}

// EventerFromContext attempts to get the eventer value from the context
// provided.
func EventerFromContext(ctx context.Context) (*Eventer, bool) {
	if ctx == nil {
		return nil, false
	}
	eventer, ok := ctx.Value(eventerKey).(*Eventer)
	return eventer, ok
}

// NewRequestInfoContext will return a context containing a value for the
// provided RequestInfo.
func NewRequestInfoContext(ctx context.Context, info *RequestInfo) (context.Context, error) {
	const op = "event.NewRequestInfoContext"
	if ctx == nil {
		return nil, fmt.Errorf("%s: missing context", op)
	}
	if info == nil {
		return nil, fmt.Errorf("%s: missing request info", op)
	}
	if info.Id == "" {
		return nil, fmt.Errorf("%s: missing request info id", op)
	}
	return context.WithValue(ctx, requestInfoKey, info), nil
}

// RequestInfoFromContext attempts to get the RequestInfo value from the
// context provided.
func RequestInfoFromContext(ctx context.Context) (*RequestInfo, bool) {
	if ctx == nil {
		return nil, false
	}
	info, ok := ctx.Value(requestInfoKey).(*RequestInfo)
	return info, ok
}

// WriteError will write an error event.  It will first check the ctx for an
// eventer, then try SysEventer(), and as a last resort log via hclog; it
// never fails the caller's operation.
func WriteError(ctx context.Context, caller Op, e error) {
	const op = "event.WriteError"
	eventer, ok := EventerFromContext(ctx)
	if !ok {
		eventer = SysEventer()
		if eventer == nil {
			logger := hclog.New(nil)
			logger.Error(fmt.Sprintf("%s: no eventer available to write error: %v", op, e))
			return
		}
	}
	info, _ := RequestInfoFromContext(ctx)
	if err := eventer.writeError(ctx, caller, e, info); err != nil {
		eventer.logger.Error(fmt.Sprintf("%s: unable to write error: %v", op, err))
		eventer.logger.Error(fmt.Sprintf("%s: unwritten error: %v", op, e))
	}
}

// WriteSysEvent will write a system event.  It will first check the ctx for
// an eventer, then try SysEventer(), and as a last resort log via hclog; it
// never fails the caller's operation.
func WriteSysEvent(ctx context.Context, caller Op, msg string, args ...any) {
	const op = "event.WriteSysEvent"
	data := convertArgs(args...)
	eventer, ok := EventerFromContext(ctx)
	if !ok {
		eventer = SysEventer()
		if eventer == nil {
			logger := hclog.New(nil)
			logger.Info(fmt.Sprintf("%s: %s: %s %v", op, caller, msg, data))
			return
		}
	}
	info, _ := RequestInfoFromContext(ctx)
	if err := eventer.writeSysEvent(ctx, caller, msg, data, info); err != nil {
		eventer.logger.Error(fmt.Sprintf("%s: unable to write sys event: %v", op, err))
	}
}

// WriteObservation will write an observation event with the details given
// via WithDetails.  Observations without an available eventer are dropped.
func WriteObservation(ctx context.Context, caller Op, msg string, opt ...Option) {
	const op = "event.WriteObservation"
	opts := getOpts(opt...)
	eventer, ok := EventerFromContext(ctx)
	if !ok {
		eventer = SysEventer()
		if eventer == nil {
			return
		}
	}
	info, _ := RequestInfoFromContext(ctx)
	if err := eventer.writeObservation(ctx, caller, msg, opts.withDetails, info); err != nil {
		eventer.logger.Error(fmt.Sprintf("%s: unable to write observation: %v", op, err))
	}
}

// convertArgs converts alternating key/value args into a map.  An odd
// trailing arg is stored under "msg_arg".
func convertArgs(args ...any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	data := make(map[string]any, (len(args)+1)/2)
	for i := 0; i+1 < len(args); i += 2 {
		data[fmt.Sprintf("%v", args[i])] = args[i+1]
	}
	if len(args)%2 == 1 {
		data["msg_arg"] = args[len(args)-1]
	}
	return data
}
