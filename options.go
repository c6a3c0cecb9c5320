package hemit

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var optionsValidator = validator.New()

// Options holds the sinks and runtime switches shared by Emitter and ExecRunner.
// The tags document required fields; Validate enforces them.
type Options struct {
	stdout io.Writer `validate:"required"`
	stderr io.Writer `validate:"required"`
	tty    bool
	logger zerolog.Logger
}

// Option configures an Emitter or a fixture run.
type Option func(o *Options)

// NewOptions applies setters on top of the defaults.
func NewOptions(setters ...Option) Options {
	o := defaultOptions()

	for _, set := range setters {
		set(&o)
	}

	return o
}

// WithStdout sets the primary sink.
func WithStdout(w io.Writer) Option {
	return func(o *Options) {
		o.stdout = w
	}
}

// WithStderr sets the error sink.
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.stderr = w
	}
}

// WithTTY enables or disables pseudo-terminal execution of fixtures.
func WithTTY(enabled bool) Option {
	return func(o *Options) {
		o.tty = enabled
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// Validate checks that both sinks are set.
func (o *Options) Validate() error {
	var errs []error

	if err := optionsValidator.Var(o.stdout, "required"); err != nil {
		errs = append(errs, fmt.Errorf("%w: stdout", ErrSinkRequired))
	}

	if err := optionsValidator.Var(o.stderr, "required"); err != nil {
		errs = append(errs, fmt.Errorf("%w: stderr", ErrSinkRequired))
	}

	return errors.Join(errs...)
}

func resolveOptions(opts []Option) (Options, error) {
	out := NewOptions(opts...)
	if err := out.Validate(); err != nil {
		return Options{}, err
	}

	return out, nil
}

func defaultOptions() Options {
	return Options{
		stdout: io.Discard,
		stderr: io.Discard,
		tty:    false,
		logger: zerolog.Nop(),
	}
}
