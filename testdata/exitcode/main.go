// Package main provides a fixture that fails after a partial status line.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprint(os.Stdout, "HTTP/1.1 500")
	fmt.Fprintln(os.Stderr, "fixture crashed")
	os.Exit(3)
}
