// Command mention-demo is a terminal playground for trigger recognition:
// type @, # or <> followed by a few letters and pick a suggestion.
package main

import (
	"os"
)

// Build information injected via ldflags at build time.
var (
	buildCommit = ""
	buildDate   = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
