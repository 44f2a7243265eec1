package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/ansigen/internal/clipboard"
	"github.com/kk-code-lab/ansigen/internal/config"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	inputui "github.com/kk-code-lab/ansigen/internal/ui/input"
	renderui "github.com/kk-code-lab/ansigen/internal/ui/render"
)

// NewApplication initializes the screen and the initial document.
func NewApplication(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	cb := opts.Clipboard
	clipboardAvail := true
	if cb == nil {
		var kind clipboard.Kind
		cb, kind = clipboard.New(clipboard.Options{Command: opts.Config.Clipboard.Command})
		clipboardAvail = kind != clipboard.KindMemory
		logger.Printf("clipboard backend: %s", kind)
	}
	editorCmd, editorAvail := detectEditorCommand()
	if editorAvail {
		logger.Printf("editor: %v", editorCmd)
	}

	state := NewInitialState(opts.Config)
	state.ClipboardAvailable = clipboardAvail
	state.EditorAvailable = editorAvail
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		actionCh:  actionCh,
		clipboard: cb,
		editorCmd: editorCmd,
		logger:    logger,

		configUpdates: opts.ConfigUpdates,
		configErrors:  opts.ConfigErrors,
	}, nil
}

// Run processes events until the user quits.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var resumeCh chan os.Signal
	if sigs := resumeSignals(); len(sigs) > 0 {
		resumeCh = make(chan os.Signal, 1)
		signal.Notify(resumeCh, sigs...)
		defer signal.Stop(resumeCh)
	}

	// The copy indicator needs one more frame once it expires.
	var flashTimer *time.Timer
	var flashCh <-chan time.Time
	var flashFor time.Time
	scheduleFlashExpiry := func() {
		if app.state.LastCopyTime.IsZero() || app.state.LastCopyTime.Equal(flashFor) {
			return
		}
		flashFor = app.state.LastCopyTime
		remaining := time.Until(flashFor.Add(statepkg.CopyFlashDuration))
		if flashTimer == nil {
			flashTimer = time.NewTimer(remaining)
		} else {
			if !flashTimer.Stop() {
				select {
				case <-flashTimer.C:
				default:
				}
			}
			flashTimer.Reset(remaining)
		}
		flashCh = flashTimer.C
	}
	defer func() {
		if flashTimer != nil {
			flashTimer.Stop()
		}
	}()

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}
		scheduleFlashExpiry()

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-flashCh:
			flashCh = nil
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-resumeCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		case cfg := <-app.configUpdates:
			if app.handleConfigReload(cfg) {
				renderPending = true
			}
		case err := <-app.configErrors:
			if app.handleConfigError(err) {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleConfigReload(cfg config.Config) bool {
	app.logger.Printf("config reloaded from %s", cfg.Source)
	return app.handleAction(settingsFromConfig(cfg))
}

// handleConfigError keeps the previous settings and reports the failure.
func (app *Application) handleConfigError(err error) bool {
	app.state.LastError = fmt.Errorf("reloading config: %w", err)
	app.logger.Printf("config reload: %v", err)
	return true
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			app.screen.Sync()
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.CopyAction:
		return app.handleCopy()
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	case statepkg.OpenPagerAction:
		return app.handleOpenPager()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.logger.Printf("reduce %T: %v", action, err)
	}
	return true
}
