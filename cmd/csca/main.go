// Command csca draws the circular-shift recurrence in a desktop window, in
// the terminal, or to a PNG file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
