// Package main is the stock fixture: it prints the default response and diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/metalagman/hemit"
)

func main() {
	emitter, err := hemit.NewEmitter(
		hemit.DefaultConfig(),
		hemit.WithStdout(os.Stdout),
		hemit.WithStderr(os.Stderr),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := emitter.Emit(); err != nil {
		os.Exit(1)
	}
}
