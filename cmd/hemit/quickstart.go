package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuickstartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "Show examples and usage instructions",
		Run: func(_ *cobra.Command, _ []string) {
			printQuickstart()
		},
	}
}

func printQuickstart() {
	fmt.Println(`Quickstart Guide for hemit

1. Emit the stock fixture
   Prints the HTTP/1.1 response to stdout and "test error" to stderr.

   hemit emit

2. Emit with overrides
   Values not given fall back to the defaults or the config file.

   hemit emit --instance=staging --method=POST --crlf

3. Emit from a config file

   cat > fixture.yaml <<YAML
   instance: integration_test
   method: GET
   diagnostic: test error
   line_ending: lf
   YAML
   hemit emit --config=fixture.yaml

4. Check a fixture
   Runs the command, parses its stdout and verifies framing, Content-Length,
   body shape and the stderr diagnostic.

   hemit check -- hemit emit
   hemit check --instance=staging -- node handler.js
   hemit check --tty --timeout=5s -- ./fixture

See README.md for more details.`)
}
