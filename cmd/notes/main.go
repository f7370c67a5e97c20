package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

// failed wraps err with the user-facing message of the failed action.
func failed(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Execute builds the command tree and runs it. Errors are printed once, after
// every deferred cleanup of the command has run.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
