// Package main provides a fixture whose Content-Length undercounts the body.
package main

import (
	"fmt"
	"os"
)

func main() {
	body := `{"status":"success","message":"short"}`
	fmt.Fprintln(os.Stdout, "HTTP/1.1 200 OK")
	fmt.Fprintln(os.Stdout, "Content-Type: application/json")
	fmt.Fprintf(os.Stdout, "Content-Length: %d\n", len(body)-5)
	fmt.Fprintln(os.Stdout, "Connection: close")
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, body)
	fmt.Fprint(os.Stderr, "test error")
}
