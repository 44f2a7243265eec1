//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
)

// suspendToShell hands the terminal back and stops the process, as Ctrl+Z
// would in a cooked terminal. Only this pid is signalled so a wrapping
// shell function keeps its job control.
func (app *Application) suspendToShell() {
	if err := app.screen.Suspend(); err != nil {
		app.logger.Printf("suspend: %v", err)
	}
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// resumeAfterStop reclaims the terminal after SIGCONT. The window may have
// been resized while stopped.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		_, _ = app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
