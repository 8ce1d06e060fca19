// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package event

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/eventlogger"
	"github.com/hashicorp/eventlogger/sinks/writer"
	"github.com/hashicorp/go-hclog"
)

var (
	sysEventer     *Eventer
	sysEventerLock sync.RWMutex
)

// InitSysEventer provides a mechanism to initialize a process-wide Eventer
// used as the fallback when no Eventer is found in a context.
func InitSysEventer(e *Eventer) {
	sysEventerLock.Lock()
	defer sysEventerLock.Unlock()
	sysEventer = e
}

// SysEventer returns the process-wide Eventer, which may be nil.
func SysEventer() *Eventer {
	sysEventerLock.RLock()
	defer sysEventerLock.RUnlock()
	return sysEventer
}

// Eventer routes error, system and observation events through an
// eventlogger broker to its sinks.  Safe for concurrent use.
type Eventer struct {
	broker *eventlogger.Broker
	logger hclog.Logger
}

// NewEventer creates an Eventer with one JSON pipeline per event type.  By
// default events are written to stderr; WithWriter redirects them, which
// tests use to capture output.
func NewEventer(ctx context.Context, logger hclog.Logger, opt ...Option) (*Eventer, error) {
	const op = "event.NewEventer"
	if logger == nil {
		return nil, fmt.Errorf("%s: missing logger", op)
	}
	opts := getOpts(opt...)
	w := opts.withWriter
	if w == nil {
		w = os.Stderr
	}

	broker, err := eventlogger.NewBroker()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e := &Eventer{
		broker: broker,
		logger: logger,
	}

	fmtId, err := NewId("json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := broker.RegisterNode(eventlogger.NodeID(fmtId), &eventlogger.JSONFormatter{}); err != nil {
		return nil, fmt.Errorf("%s: unable to register formatter node: %w", op, err)
	}
	sinkId, err := NewId("sink")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sinkNode := &writer.Sink{
		Format: eventlogger.JSONFormat,
		Writer: &serializedWriter{w: w},
	}
	if err := broker.RegisterNode(eventlogger.NodeID(sinkId), sinkNode); err != nil {
		return nil, fmt.Errorf("%s: unable to register sink node: %w", op, err)
	}

	for _, t := range []Type{ErrorType, SystemType, ObservationType} {
		pipeId, err := NewId(fmt.Sprintf("%s-pipeline", t))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		err = broker.RegisterPipeline(eventlogger.Pipeline{
			EventType:  eventlogger.EventType(t),
			PipelineID: eventlogger.PipelineID(pipeId),
			NodeIDs:    []eventlogger.NodeID{eventlogger.NodeID(fmtId), eventlogger.NodeID(sinkId)},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to register %s pipeline: %w", op, t, err)
		}
		if err := broker.SetSuccessThreshold(eventlogger.EventType(t), 1); err != nil {
			return nil, fmt.Errorf("%s: failed to set success threshold for %s: %w", op, t, err)
		}
	}
	return e, nil
}

func (e *Eventer) writeError(ctx context.Context, caller Op, err error, info *RequestInfo) error {
	payload := &errorEvent{
		Op:          caller,
		Error:       err.Error(),
		Time:        time.Now().UTC(),
		RequestInfo: info,
	}
	if _, sendErr := e.broker.Send(ctx, eventlogger.EventType(ErrorType), payload); sendErr != nil {
		return sendErr
	}
	return nil
}

func (e *Eventer) writeSysEvent(ctx context.Context, caller Op, msg string, data map[string]any, info *RequestInfo) error {
	payload := &sysEvent{
		Op:          caller,
		Msg:         msg,
		Data:        data,
		Time:        time.Now().UTC(),
		RequestInfo: info,
	}
	if _, sendErr := e.broker.Send(ctx, eventlogger.EventType(SystemType), payload); sendErr != nil {
		return sendErr
	}
	return nil
}

func (e *Eventer) writeObservation(ctx context.Context, caller Op, msg string, details map[string]any, info *RequestInfo) error {
	payload := &observationEvent{
		Op:          caller,
		Msg:         msg,
		Details:     details,
		Time:        time.Now().UTC(),
		RequestInfo: info,
	}
	if _, sendErr := e.broker.Send(ctx, eventlogger.EventType(ObservationType), payload); sendErr != nil {
		return sendErr
	}
	return nil
}
