// Command formvalue builds typed records from definitions and fills, checks
// or types into them from the terminal.
package main

import (
	"context"
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
