// Package main provides a fixture that never finishes its response in time.
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	fmt.Fprintln(os.Stdout, "HTTP/1.1 200 OK")
	time.Sleep(20 * time.Second)
}
