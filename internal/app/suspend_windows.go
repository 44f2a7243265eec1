//go:build windows

package app

// Consoles have no job control, so Ctrl+Z is ignored.
func (app *Application) suspendToShell() {
	app.logger.Printf("suspend is not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
