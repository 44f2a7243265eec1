//go:build windows

package app

import "os"

func resumeSignals() []os.Signal {
	return nil
}
