// Package telemetry builds the zerolog loggers used as diagnostic sinks by the store and the
// programs that drive it.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/argus-labs/ecstore/pkg/assert"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Telemetry struct {
	Logger      zerolog.Logger
	serviceName string
}

// New creates the service logger. Environment variables take precedence over zero fields of opts,
// non-zero fields of opts take precedence over the environment.
func New(opts Options) (Telemetry, error) {
	return newTelemetry(opts, env.Options{})
}

func newTelemetry(opts Options, envOpts env.Options) (Telemetry, error) {
	config, err := loadConfig(envOpts)
	if err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to load telemetry config")
	}

	var options Options
	config.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return Telemetry{}, eris.Wrap(err, "invalid telemetry options")
	}

	return Telemetry{
		Logger:      newLogger(options),
		serviceName: options.ServiceName,
	}, nil
}

// GetLogger returns a component-specific logger.
func (t *Telemetry) GetLogger(component string) zerolog.Logger {
	return t.Logger.With().Str("component", t.serviceName+"."+component).Logger()
}

// newLogger creates a logger with the specified level and format. Options must be validated.
func newLogger(opts Options) zerolog.Logger {
	level, err := parseLevel(opts.LogLevel)
	assert.That(err == nil, "log level %q wasn't validated", opts.LogLevel)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var writer io.Writer
	switch opts.LogFormat {
	case LogFormatPretty:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case LogFormatJSON:
		writer = out
	case LogFormatUndefined:
		assert.Unreachable("log format wasn't validated")
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger()
}
