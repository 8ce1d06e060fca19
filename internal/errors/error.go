// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
)

// Op represents an operation (package.function) that raised an error, e.g.
// "connector.(Repository).LookupConnector".
type Op string

// Err provides the ability to specify a Msg, Op, Code and Wrapped error.
// Errs must be created via New or Wrap, never directly.
type Err struct {
	// Code is the error's code, which can be used to get the error's
	// errorCodeInfo, which contains the error's Kind and Message
	Code Code

	// Msg for the error
	Msg string

	// Op represents the operation raising/propagating an error and is optional
	Op Op

	// Wrapped is the error which this Err wraps and will be nil if there is no
	// error to wrap.
	Wrapped error
}

// New creates a new Err with the provided code, op and msg.  It supports the
// option of WithWrap.  If a msg is present it's used in the error string,
// otherwise the code's default Info.Message is used.
func New(ctx context.Context, c Code, op Op, msg string, opt ...Option) error {
	opts := getOpts(opt...)
	return &Err{
		Code:    c,
		Op:      op,
		Msg:     msg,
		Wrapped: opts.withErrWrapped,
	}
}

// Wrap creates a new Err from the provided err and op.  It supports the
// options of WithCode and WithMsg.  If the wrapped err is an *Err, its Code
// is carried forward unless overridden with WithCode.
func Wrap(ctx context.Context, e error, op Op, opt ...Option) error {
	opts := getOpts(opt...)
	err := &Err{
		Op:      op,
		Msg:     opts.withErrMsg,
		Wrapped: e,
	}
	switch {
	case opts.withErrCode != nil:
		err.Code = *opts.withErrCode
	default:
		var wrapped *Err
		if stderrors.As(e, &wrapped) {
			err.Code = wrapped.Code
		}
	}
	return err
}

// Error satisfies the error interface and returns a string representation of
// the Err in the stable format "op: msg: kind: error #code".
func (e *Err) Error() string {
	if e == nil {
		return ""
	}
	var msgs []string
	if e.Op != "" {
		msgs = append(msgs, string(e.Op))
	}
	if e.Msg != "" {
		msgs = append(msgs, e.Msg)
	}
	if info, ok := errorCodeInfo[e.Code]; ok {
		if e.Msg == "" {
			msgs = append(msgs, info.Message, info.Kind.String())
		} else {
			msgs = append(msgs, info.Kind.String())
		}
	}
	msgs = append(msgs, fmt.Sprintf("error #%d", e.Code))

	if len(msgs) == 0 && e.Wrapped != nil {
		msgs = append(msgs, e.Wrapped.Error())
	}
	return strings.Join(msgs, ": ")
}

// Unwrap implements the errors.Unwrap interface and allows callers to use the
// errors.Is() and errors.As() functions effectively for any wrapped errors.
func (e *Err) Unwrap() error {
	return e.Wrapped
}
