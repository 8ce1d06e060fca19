// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package connector

// GetOpts iterates the inbound Options and returns a struct.  It is
// exported so repository implementations in their own packages can read
// the resolved options.
func GetOpts(opt ...Option) Options {
	opts := Options{}
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// Option - how Options are passed as arguments
type Option func(*Options)

// Options - how Options are represented
type Options struct {
	WithOwner              string
	WithActive             bool
	WithTrusted            bool
	WithParams             map[string]any
	WithConnectionSettings ConnectionSettings
	WithCapabilities       Capabilities
	WithIds                []string
}

// WithOwner provides an option to set the connector's owner, or to restrict
// a list operation to one owner.
func WithOwner(owner string) Option {
	return func(o *Options) {
		o.WithOwner = owner
	}
}

// WithActive provides an option to set the connector active.
func WithActive(active bool) Option {
	return func(o *Options) {
		o.WithActive = active
	}
}

// WithTrusted provides an option to mark the connector trusted.
func WithTrusted(trusted bool) Option {
	return func(o *Options) {
		o.WithTrusted = trusted
	}
}

// WithParams provides an option to set backend-specific parameters.
func WithParams(params map[string]any) Option {
	return func(o *Options) {
		o.WithParams = params
	}
}

// WithConnectionSettings provides an option to set connection pooling bounds.
func WithConnectionSettings(cs ConnectionSettings) Option {
	return func(o *Options) {
		o.WithConnectionSettings = cs
	}
}

// WithCapabilities provides an option to set backend capabilities.
func WithCapabilities(c Capabilities) Option {
	return func(o *Options) {
		o.WithCapabilities = c
	}
}

// WithIds provides an option to restrict a list operation to the given
// connector ids.
func WithIds(ids ...string) Option {
	return func(o *Options) {
		o.WithIds = ids
	}
}
