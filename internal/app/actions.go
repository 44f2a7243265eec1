package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/textutil"
)

var commandBuilder = exec.Command

// handleCopy stores the ANSI block on the clipboard.
func (app *Application) handleCopy() bool {
	text := app.state.ANSI()
	if err := app.clipboard.Store(text); err != nil {
		app.state.LastError = fmt.Errorf("copy: %w", err)
		app.logger.Printf("copy failed: %v", err)
		return true
	}
	app.state.LastCopyTime = time.Now()
	app.state.LastCopyBytes = len(text)
	app.logger.Printf("copied %d bytes", len(text))
	return true
}

// handleEditorOpen lets the user edit the plain text in an external editor
// and feeds the result back as a text change.
func (app *Application) handleEditorOpen() bool {
	if len(app.editorCmd) == 0 {
		app.state.LastError = ErrNoEditor
		return true
	}
	text, err := app.editText(app.state.Text)
	if err != nil {
		app.state.LastError = err
		app.logger.Printf("editor: %v", err)
		return true
	}
	if text == app.state.Text {
		return true
	}
	if _, err := app.reducer.Reduce(app.state, statepkg.SetTextAction{Text: text}); err != nil {
		app.state.LastError = err
	}
	return true
}

// handleOpenPager shows the raw ANSI block in a pager.
func (app *Application) handleOpenPager() bool {
	if err := app.viewANSI(app.state.ANSI()); err != nil {
		app.state.LastError = err
		app.logger.Printf("pager: %v", err)
	}
	return true
}

func (app *Application) editText(text string) (string, error) {
	path, cleanup, err := writeTempFile("ansigen-*.txt", text)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := app.runInTerminal(app.editorArgsWithFile(path)); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edited text: %w", err)
	}
	edited, err := textutil.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("reading edited text: %w", err)
	}
	// Most editors terminate the last line; keep the document as it was.
	if !strings.HasSuffix(text, "\n") {
		edited = strings.TrimSuffix(strings.TrimSuffix(edited, "\n"), "\r")
	}
	return edited, nil
}

func (app *Application) viewANSI(block string) error {
	path, cleanup, err := writeTempFile("ansigen-*.ansi", block+"\n")
	if err != nil {
		return err
	}
	defer cleanup()

	args := app.pagerArgs(path)
	if len(args) == 0 {
		return ErrNoPager
	}
	return app.runInTerminal(args)
}

func (app *Application) pagerArgs(filePath string) []string {
	base := detectPagerCommand(runtime.GOOS, os.Getenv("PAGER"), pagerLookPath)
	if len(base) == 0 {
		return nil
	}
	return append(base[:len(base):len(base)], filePath)
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}

// runInTerminal suspends the screen and runs args attached to the
// controlling terminal, falling back to the process stdio.
func (app *Application) runInTerminal(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	if runtime.GOOS == "windows" {
		return app.runWithStdio(args)
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return app.runWithStdio(args)
	}
	defer func() {
		_ = tty.Close()
	}()

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", args[0], runErr)
	}
	return nil
}

func (app *Application) runWithStdio(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		if err := flushConsoleInput(); err != nil {
			app.logger.Printf("flush console input: %v", err)
		}
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func writeTempFile(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}
