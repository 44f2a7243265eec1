package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

var pagerLookPath = exec.LookPath

type lookPathFunc func(string) (string, error)

var (
	unixEditors    = [][]string{{"vim"}, {"nano"}, {"vi"}}
	windowsEditors = [][]string{{"code", "--wait"}, {"notepad++.exe", "-multiInst", "-nosession"}, {"notepad.exe"}}
	unixPagers     = [][]string{{"less", "-R"}, {"more"}}
	windowsPagers  = [][]string{{"more.com"}, {"more"}}
)

func detectEditorCommand() ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectEditorCommandInternal prefers $VISUAL, then $EDITOR, then a
// platform default found on PATH.
func detectEditorCommandInternal(goos string, getenv func(string) string, lookPath lookPathFunc) ([]string, bool) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if args, ok := resolveCommand(splitCommandLine(getenv(name)), lookPath); ok {
			return args, true
		}
	}
	defaults := unixEditors
	if isWindows(goos) {
		defaults = windowsEditors
	}
	return firstAvailable(defaults, lookPath)
}

// detectPagerCommand honours $PAGER as given, then falls back to a pager
// that passes SGR sequences through.
func detectPagerCommand(goos string, pagerEnv string, lookPath lookPathFunc) []string {
	if args := splitCommandLine(pagerEnv); len(args) > 0 {
		return args
	}
	defaults := unixPagers
	if isWindows(goos) {
		defaults = windowsPagers
	}
	if args, ok := firstAvailable(defaults, lookPath); ok {
		return args
	}
	if isWindows(goos) {
		return []string{"cmd", "/C", "type"}
	}
	return []string{"less", "-R"}
}

func firstAvailable(candidates [][]string, lookPath lookPathFunc) ([]string, bool) {
	for _, candidate := range candidates {
		if args, ok := resolveCommand(candidate, lookPath); ok {
			return args, true
		}
	}
	return nil, false
}

// resolveCommand returns a copy of args with the executable replaced by its
// path on PATH.
func resolveCommand(args []string, lookPath lookPathFunc) ([]string, bool) {
	if len(args) == 0 || args[0] == "" || lookPath == nil {
		return nil, false
	}
	resolved, err := lookPath(expandUserPath(args[0]))
	if err != nil || resolved == "" {
		return nil, false
	}
	out := append([]string{resolved}, args[1:]...)
	return out, true
}

// splitCommandLine splits a shell-like command string on whitespace,
// honouring single and double quotes. A leading ~ in the program is
// expanded.
func splitCommandLine(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var (
		args    []string
		current strings.Builder
		quote   rune
		started bool
	)
	flush := func() {
		if started {
			args = append(args, current.String())
			current.Reset()
			started = false
		}
	}

	for _, r := range cmd {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}

func isWindows(goos string) bool {
	return strings.EqualFold(goos, "windows")
}
