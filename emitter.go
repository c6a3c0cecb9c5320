package hemit

import (
	"errors"
	"fmt"
	"io"
)

// Emitter writes the fixture response to a primary sink and the diagnostic
// to an error sink.
type Emitter struct {
	cfg  Config
	opts Options
}

// NewEmitter constructs an emitter for cfg. Sinks default to io.Discard.
func NewEmitter(cfg Config, opts ...Option) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runOpts, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("resolve options: %w", err)
	}

	return &Emitter{cfg: cfg, opts: runOpts}, nil
}

// Config returns the configuration the emitter renders.
func (e *Emitter) Config() Config {
	return e.cfg
}

// Render returns the primary output without writing it.
func (e *Emitter) Render() ([]byte, error) {
	body, err := NewPayload(e.cfg).Encode()
	if err != nil {
		return nil, err
	}

	return NewJSONResponse(body).Marshal(e.cfg.LineEnding), nil
}

// Emit writes the response to the primary sink in a single write, then the
// diagnostic to the error sink. The diagnostic is written even when the
// primary write fails; both failures are returned.
func (e *Emitter) Emit() error {
	out, err := e.Render()
	if err != nil {
		return err
	}

	var errs []error

	if _, err := e.opts.stdout.Write(out); err != nil {
		errs = append(errs, errors.Join(ErrWritePrimary, err))
	} else {
		e.opts.logger.Debug().Int("bytes", len(out)).Msg("response written")
	}

	if _, err := io.WriteString(e.opts.stderr, e.cfg.Diagnostic); err != nil {
		errs = append(errs, errors.Join(ErrWriteDiagnostic, err))
	}

	return errors.Join(errs...)
}
