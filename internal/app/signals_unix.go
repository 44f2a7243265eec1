//go:build !windows

package app

import (
	"os"
	"syscall"
)

// resumeSignals are delivered when the shell brings a suspended ansigen
// back to the foreground.
func resumeSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
