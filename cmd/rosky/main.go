package main

import (
	"errors"
	"os"
	"rosky/internal/diag"
)

var (
	// Version is stamped at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			diag.Render(os.Stderr, err, "", false)
		}
		os.Exit(1)
	}
}
