// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package event

import "io"

// getOpts - iterate the inbound Options and return a struct
func getOpts(opt ...Option) options {
	opts := options{}
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// Option - how Options are passed as arguments
type Option func(*options)

// options = how options are represented
type options struct {
	withWriter  io.Writer
	withDetails map[string]any
}

// WithWriter provides an option to redirect event output, used by tests to
// capture events.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.withWriter = w
	}
}

// WithDetails provides an option to attach a detail payload to an
// observation event.
func WithDetails(details map[string]any) Option {
	return func(o *options) {
		o.withDetails = details
	}
}
