package tether

import (
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/tether/handle"
)

var (
	// DefaultMigrationTTL is the default minimum period of time to retain an
	// unconfirmed migration entry before Run() evicts it.
	//
	// It is overridden by the WithMigrationTTL() option.
	DefaultMigrationTTL = 1 * time.Hour

	// DefaultLogger is the default target for log messages produced by the
	// registry.
	//
	// It is overridden by the WithLogger() option.
	DefaultLogger = logging.DefaultLogger
)

// Option configures the behavior of a registry.
type Option func(*registryOptions)

// WithTagStore returns an option that sets the tag store used to associate
// recoverable identities with registered objects.
//
// If this option is omitted or s is nil, an in-memory tag store private to
// the registry is used.
func WithTagStore(s handle.TagStore) Option {
	return func(opts *registryOptions) {
		opts.TagStore = s
	}
}

// WithMigrationTTL returns an option that sets the minimum period of time an
// unconfirmed migration entry is retained before Run() evicts it.
//
// If this option is omitted or d is zero, DefaultMigrationTTL is used.
func WithMigrationTTL(d time.Duration) Option {
	if d < 0 {
		panic("duration must not be negative")
	}

	return func(opts *registryOptions) {
		opts.MigrationTTL = d
	}
}

// WithLogger returns an option that sets the target for log messages produced
// by the registry.
//
// If this option is omitted or l is nil, DefaultLogger is used.
func WithLogger(l logging.Logger) Option {
	return func(opts *registryOptions) {
		opts.Logger = l
	}
}

// registryOptions is a container for a fully-resolved set of registry
// options.
type registryOptions struct {
	TagStore     handle.TagStore
	MigrationTTL time.Duration
	Logger       logging.Logger
}

// resolveRegistryOptions returns a fully-populated set of registry options
// built from the given set of option functions.
func resolveRegistryOptions(options ...Option) *registryOptions {
	opts := &registryOptions{}

	for _, o := range options {
		o(opts)
	}

	if opts.MigrationTTL == 0 {
		opts.MigrationTTL = DefaultMigrationTTL
	}

	if opts.Logger == nil {
		opts.Logger = DefaultLogger
	}

	return opts
}
