// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

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
	withErrWrapped error
	withErrMsg     string
	withErrCode    *Code
}

// WithWrap provides an option to provide an error to wrap when creating a
// new error.
func WithWrap(e error) Option {
	return func(o *options) {
		o.withErrWrapped = e
	}
}

// WithMsg provides an option to provide a message when wrapping an error.
func WithMsg(msg string) Option {
	return func(o *options) {
		o.withErrMsg = msg
	}
}

// WithCode provides an option to override the code carried forward when
// wrapping an error.
func WithCode(code Code) Option {
	return func(o *options) {
		o.withErrCode = &code
	}
}
