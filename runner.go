package hemit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

// waitDelay bounds how long a run waits for output after the fixture exits
// or is killed. Grandchildren that inherited its stdio are not waited for.
const waitDelay = time.Second

// Runner launches a fixture and captures what it prints.
type Runner interface {
	Run(ctx context.Context, dir string, opts ...Option) (Capture, error)
}

// FixtureConfig describes how to launch a fixture.
type FixtureConfig struct {
	Cmd    []string `json:"cmd"               yaml:"cmd"`
	UseTTY bool     `json:"use_tty,omitempty" yaml:"use_tty"`
}

// Capture holds the streams of one fixture run. Under a TTY both streams
// arrive merged in Stdout and Stderr is empty.
type Capture struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TTY      bool
}

// NewRunner constructs a runner for the given fixture config.
func NewRunner(cfg FixtureConfig) (*ExecRunner, error) {
	if len(cfg.Cmd) == 0 {
		return nil, fmt.Errorf("fixture requires cmd")
	}

	return &ExecRunner{cmd: cfg.Cmd, useTTY: cfg.UseTTY}, nil
}

// ExecRunner runs a fixture command as a child process.
type ExecRunner struct {
	cmd    []string
	useTTY bool
}

// Run starts the fixture in dir with no stdin. An empty dir means the
// current directory.
func (r *ExecRunner) Run(ctx context.Context, dir string, opts ...Option) (Capture, error) {
	opts = append([]Option{WithTTY(r.useTTY)}, opts...)

	runOpts, err := resolveOptions(opts)
	if err != nil {
		return Capture{}, fmt.Errorf("resolve options: %w", err)
	}

	log := runOpts.logger.With().
		Str("run_id", uuid.NewString()).
		Strs("cmd", r.cmd).
		Bool("tty", runOpts.tty).
		Logger()

	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return Capture{}, fmt.Errorf("%w: %s: %v", ErrMissingRunDir, dir, err)
		}
	}

	log.Debug().Str("dir", dir).Msg("starting fixture")

	var c Capture
	if runOpts.tty {
		c, err = runCommandWithTTY(ctx, r.cmd, dir, runOpts.stdout)
	} else {
		c, err = runCommand(ctx, r.cmd, dir, runOpts.stdout, runOpts.stderr)
	}

	if err != nil {
		if c.ExitCode != 0 {
			err = fmt.Errorf("exit code %d: %w", c.ExitCode, errors.Join(ErrFixtureFailed, err))
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}

		log.Warn().Err(err).Int("exit_code", c.ExitCode).Msg("fixture failed")

		return c, err
	}

	log.Debug().
		Int("stdout_bytes", len(c.Stdout)).
		Int("stderr_bytes", len(c.Stderr)).
		Msg("fixture finished")

	return c, nil
}

func runCommand(
	ctx context.Context,
	argv []string,
	workDir string,
	stdoutSink io.Writer,
	stderrSink io.Writer,
) (Capture, error) {
	if len(argv) == 0 {
		return Capture{}, fmt.Errorf("fixture command is empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	if stdoutSink != nil {
		cmd.Stdout = io.MultiWriter(&stdout, stdoutSink)
	} else {
		cmd.Stdout = &stdout
	}

	if stderrSink != nil {
		cmd.Stderr = io.MultiWriter(&stderr, stderrSink)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	c := Capture{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			c.ExitCode = exitErr.ExitCode()

			return c, err
		}

		return c, fmt.Errorf("cmd run: %w", err)
	}

	return c, nil
}

// runCommandWithTTY runs argv on a pseudo-terminal. The terminal turns every
// LF into CRLF on output; the capture undoes that translation.
func runCommandWithTTY(
	ctx context.Context,
	argv []string,
	workDir string,
	stdoutSink io.Writer,
) (Capture, error) {
	if len(argv) == 0 {
		return Capture{}, fmt.Errorf("fixture command is empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return Capture{}, fmt.Errorf("start pty: %w", err)
	}

	var out bytes.Buffer

	var outWriter io.Writer = &out
	if stdoutSink != nil {
		outWriter = io.MultiWriter(&out, stdoutSink)
	}

	done := make(chan error, 1)

	go func() {
		_, err := io.Copy(outWriter, ptmx)
		done <- err
	}()

	err = cmd.Wait()

	// The slave side is closed in this process, so the copy ends once the
	// buffered output is drained, unless a grandchild still holds the terminal.
	select {
	case <-done:
		_ = ptmx.Close()
	case <-time.After(waitDelay):
		_ = ptmx.Close()
		<-done
	}

	c := Capture{
		Stdout: bytes.ReplaceAll(out.Bytes(), []byte("\r\n"), []byte("\n")),
		TTY:    true,
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			c.ExitCode = exitErr.ExitCode()

			return c, err
		}

		return c, fmt.Errorf("cmd wait: %w", err)
	}

	return c, nil
}
