package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultLogLevel = "warn"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hemit",
		Short:         "Emit and verify static HTTP response fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", defaultLogLevel, "log level (trace, debug, info, warn, error, disabled)")

	root.AddCommand(newEmitCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newQuickstartCmd())

	return root
}

// commandLogger builds a console logger on stderr at the level chosen by --log-level.
func commandLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	raw, err := cmd.Flags().GetString("log-level")
	if err != nil {
		raw = defaultLogLevel
	}

	return newLogger(os.Stderr, raw)
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
