//go:build windows

package app

import "golang.org/x/sys/windows"

// flushConsoleInput drops keystrokes typed into the console while an
// editor or pager owned it, so they do not replay into the editor pane.
func flushConsoleInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
