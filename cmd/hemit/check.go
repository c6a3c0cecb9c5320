package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/metalagman/hemit"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var exitFn = os.Exit

type checkOptions struct {
	emitOptions

	workDir    string
	useTTY     bool
	skipStderr bool
	debug      bool
	timeout    time.Duration
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check -- <cmd> [args...]",
		Short: "Run a fixture command and verify the response it prints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildCheckConfig(cmd, args, opts)
			if err != nil {
				return err
			}

			return runAndVerify(cmd.Context(), cfg)
		},
	}

	addConfigFlags(cmd, &opts.emitOptions)
	cmd.Flags().StringVar(&opts.workDir, "work-dir", ".", "working directory for the fixture")
	cmd.Flags().BoolVar(&opts.useTTY, "tty", false, "run the fixture in a pseudo-terminal")
	cmd.Flags().BoolVar(&opts.skipStderr, "skip-stderr", false, "do not compare the fixture's stderr")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "forward fixture stdout/stderr to stderr")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout for the fixture execution")

	return cmd
}

type checkConfig struct {
	workDir string
	runner  hemit.Runner
	expect  hemit.Expectation
	log     zerolog.Logger
	debug   bool
	timeout time.Duration
}

func buildCheckConfig(cmd *cobra.Command, args []string, opts *checkOptions) (checkConfig, error) {
	cfg, err := buildEmitConfig(cmd, &opts.emitOptions)
	if err != nil {
		return checkConfig{}, err
	}

	runner, err := hemit.NewRunner(hemit.FixtureConfig{
		Cmd:    args,
		UseTTY: opts.useTTY,
	})
	if err != nil {
		return checkConfig{}, err
	}

	log, err := commandLogger(cmd)
	if err != nil {
		return checkConfig{}, err
	}

	expect := hemit.ExpectationFor(cfg)
	expect.SkipDiagnostic = opts.skipStderr

	workDir := opts.workDir
	if workDir == "" {
		workDir = "."
	}

	return checkConfig{
		workDir: workDir,
		runner:  runner,
		expect:  expect,
		log:     log,
		debug:   opts.debug,
		timeout: opts.timeout,
	}, nil
}

func runAndVerify(ctx context.Context, cfg checkConfig) error {
	runOpts := []hemit.Option{hemit.WithLogger(cfg.log)}
	if cfg.debug {
		runOpts = append(runOpts, hemit.WithStdout(os.Stderr), hemit.WithStderr(os.Stderr))
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	capture, err := cfg.runner.Run(ctx, cfg.workDir, runOpts...)
	if err != nil {
		return exitWithError(capture.ExitCode, capture.Stderr, fmt.Errorf("run fixture: %w", err))
	}

	if err := hemit.VerifyCapture(capture, cfg.expect); err != nil {
		return exitWithError(1, nil, err)
	}

	if _, err := fmt.Fprintln(os.Stdout, "ok"); err != nil {
		return exitWithError(1, nil, fmt.Errorf("write stdout: %w", err))
	}

	return nil
}

func exitWithError(code int, errBytes []byte, err error) error {
	if len(errBytes) > 0 {
		_, _ = os.Stderr.Write(errBytes)
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}

	if code == 0 {
		code = 1
	}

	exitFn(code)

	return nil
}
