// Package clipboard stores generated ANSI blocks on a copy/paste clipboard.
//
// The system clipboard is reached through github.com/atotto/clipboard or an
// external command such as pbcopy or wl-copy. When neither is available a
// memory buffer is used so that copying never fails outright.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned by Fetch when the backend cannot read.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// A Clipboard stores and fetches text.
// Implementations support concurrent access.
type Clipboard interface {
	Store(text string) error
	Fetch() (string, error)
}

// Options select the clipboard backend.
type Options struct {
	// Command, when set, is run with the text on stdin.
	Command []string
	// DisableSystem skips github.com/atotto/clipboard.
	DisableSystem bool
}

// Kind names the backend chosen by New.
type Kind string

const (
	KindCommand Kind = "command"
	KindSystem  Kind = "system"
	KindMemory  Kind = "memory"
)

var (
	commandBuilder = exec.Command
	lookPath       = exec.LookPath
	systemMissing  = func() bool { return clipboard.Unsupported }
)

// New returns a clipboard: the configured command, else the system
// clipboard, else a detected copy command, else memory.
func New(opts Options) (Clipboard, Kind) {
	if len(opts.Command) > 0 {
		return NewCommand(opts.Command), KindCommand
	}
	if !opts.DisableSystem && !systemMissing() {
		return sysClipboard{}, KindSystem
	}
	if cmd, ok := DetectCommand(runtime.GOOS, lookPath); ok {
		return NewCommand(cmd), KindCommand
	}
	return NewMem(), KindMemory
}

// NewMem returns an empty memory clipboard.
func NewMem() Clipboard {
	return &memClipboard{}
}

type sysClipboard struct{}

func (sysClipboard) Store(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

func (sysClipboard) Fetch() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return text, nil
}

type memClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *memClipboard) Store(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

func (m *memClipboard) Fetch() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// CommandClipboard pipes text into an external copy command. Fetch returns
// the last stored text since copy commands cannot read back.
type CommandClipboard struct {
	args []string
	last memClipboard
}

// NewCommand returns a clipboard that runs args on every Store.
func NewCommand(args []string) *CommandClipboard {
	return &CommandClipboard{args: append([]string(nil), args...)}
}

func (c *CommandClipboard) Store(text string) error {
	if len(c.args) == 0 {
		return ErrClipboardUnavailable
	}
	cmd := commandBuilder(c.args[0], c.args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", c.args[0], err)
	}
	return c.last.Store(text)
}

func (c *CommandClipboard) Fetch() (string, error) {
	return c.last.Fetch()
}

// DetectCommand finds a copy command on PATH for goos.
func DetectCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	found := func(name string) (string, bool) {
		if name == "" {
			return "", false
		}
		path, err := lookPath(name)
		return path, err == nil && path != ""
	}

	if strings.EqualFold(goos, "windows") {
		for _, name := range []string{"clip.exe", "clip"} {
			if path, ok := found(name); ok {
				return []string{path}, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, ok := found(ps); ok {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	candidates := []struct {
		name string
		args []string
	}{
		{"pbcopy", nil},
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
	}
	for _, c := range candidates {
		if path, ok := found(c.name); ok {
			return append([]string{path}, c.args...), true
		}
	}
	return nil, false
}
