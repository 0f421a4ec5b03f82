package ecs

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// Options configures a Store. Options can be loaded from environment variables with LoadOptions.
type Options struct {
	// Diagnostics enables tracking of removed entities so later use of their IDs is reported.
	Diagnostics bool `env:"ECS_DIAGNOSTICS" envDefault:"false"`

	// ColumnCapacity is the initial capacity of a newly created component column.
	ColumnCapacity int `env:"ECS_COLUMN_CAPACITY" envDefault:"16"`
}

// DefaultOptions returns the options of a store with diagnostics disabled.
func DefaultOptions() Options {
	return Options{
		Diagnostics:    false,
		ColumnCapacity: defaultColumnCapacity,
	}
}

const defaultColumnCapacity = 16

// LoadOptions loads store options from environment variables.
func LoadOptions() (Options, error) {
	return loadOptions(env.Options{})
}

func loadOptions(envOpts env.Options) (Options, error) {
	opts := Options{}

	if err := env.ParseWithOptions(&opts, envOpts); err != nil {
		return opts, eris.Wrap(err, "failed to parse store options")
	}

	if err := opts.validate(); err != nil {
		return opts, eris.Wrap(err, "failed to validate store options")
	}

	return opts, nil
}

// validate checks that the options can be used to build a store.
func (opt *Options) validate() error {
	if opt.ColumnCapacity < 0 {
		return eris.Errorf("column capacity must not be negative, got %d", opt.ColumnCapacity)
	}
	return nil
}
