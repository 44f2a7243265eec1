package app

import (
	"errors"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/ansigen/internal/clipboard"
	"github.com/kk-code-lab/ansigen/internal/config"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/styling"
	inputui "github.com/kk-code-lab/ansigen/internal/ui/input"
	renderui "github.com/kk-code-lab/ansigen/internal/ui/render"
)

var (
	// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback
	// editor can be found.
	ErrNoEditor = errors.New("no editor available")
	// ErrNoPager is returned when no pager command can be resolved.
	ErrNoPager = errors.New("no pager available")
)

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	clipboard  clipboard.Clipboard
	editorCmd  []string
	logger     *log.Logger

	configUpdates <-chan config.Config
	configErrors  <-chan error
}

// Options configure a new Application.
type Options struct {
	Config config.Config
	// Logger receives diagnostics; nil discards them.
	Logger *log.Logger
	// Screen overrides the terminal screen. It must not be initialized yet.
	Screen tcell.Screen
	// Clipboard overrides clipboard detection.
	Clipboard clipboard.Clipboard
	// ConfigUpdates and ConfigErrors carry live reloads of the config file.
	ConfigUpdates <-chan config.Config
	ConfigErrors  <-chan error
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// State exposes the current state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// NewInitialState builds the document state described by cfg.
func NewInitialState(cfg config.Config) *statepkg.AppState {
	return statepkg.NewAppState(statepkg.Options{
		SeedText:   cfg.SeedText,
		Foreground: styling.ParseColor(cfg.Default.Foreground),
		Background: styling.ParseColor(cfg.Default.Background),
		Palette:    cfg.PaletteColors(),
		Encode:     cfg.EncodeOptions(),
	})
}

// settingsFromConfig extracts the parts of cfg that may change while the
// document is open.
func settingsFromConfig(cfg config.Config) statepkg.ApplySettingsAction {
	return statepkg.ApplySettingsAction{
		Palette: cfg.PaletteColors(),
		Encode:  cfg.EncodeOptions(),
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
