package main

import (
	"fmt"
	"os"

	"github.com/metalagman/hemit"
	"github.com/spf13/cobra"
)

type emitOptions struct {
	configFile string
	instance   string
	method     string
	diagnostic string
	crlf       bool
}

func newEmitCmd() *cobra.Command {
	opts := &emitOptions{}
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Print the fixture response to stdout and the diagnostic to stderr",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildEmitConfig(cmd, opts)
			if err != nil {
				return err
			}

			log, err := commandLogger(cmd)
			if err != nil {
				return err
			}

			emitter, err := hemit.NewEmitter(
				cfg,
				hemit.WithStdout(os.Stdout),
				hemit.WithStderr(os.Stderr),
				hemit.WithLogger(log),
			)
			if err != nil {
				return err
			}

			if err := emitter.Emit(); err != nil {
				return exitWithError(1, nil, fmt.Errorf("emit: %w", err))
			}

			return nil
		},
	}

	addConfigFlags(cmd, opts)

	return cmd
}

func addConfigFlags(cmd *cobra.Command, opts *emitOptions) {
	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to YAML fixture config")
	cmd.Flags().StringVar(&opts.instance, "instance", hemit.DefaultInstance, "instance identifier in the message")
	cmd.Flags().StringVar(&opts.method, "method", hemit.DefaultMethod, "HTTP method label in the message")
	cmd.Flags().StringVar(&opts.diagnostic, "diagnostic", hemit.DefaultDiagnostic, "text written to stderr")
	cmd.Flags().BoolVar(&opts.crlf, "crlf", false, "terminate lines with CRLF instead of LF")
}

// buildEmitConfig starts from the config file, if any, and applies only the
// flags the user changed.
func buildEmitConfig(cmd *cobra.Command, opts *emitOptions) (hemit.Config, error) {
	cfg := hemit.DefaultConfig()

	if opts.configFile != "" {
		loaded, err := hemit.LoadConfig(opts.configFile)
		if err != nil {
			return hemit.Config{}, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("instance") {
		cfg.Instance = opts.instance
	}

	if flags.Changed("method") {
		cfg.Method = opts.method
	}

	if flags.Changed("diagnostic") {
		cfg.Diagnostic = opts.diagnostic
	}

	if flags.Changed("crlf") {
		cfg.LineEnding = hemit.LineEndingLF
		if opts.crlf {
			cfg.LineEnding = hemit.LineEndingCRLF
		}
	}

	if err := cfg.Validate(); err != nil {
		return hemit.Config{}, err
	}

	return cfg, nil
}
