package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ih.state != nil && ih.state.HelpVisible {
		return ih.processHelpKey(ev)
	}

	extend := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearSelectionAction{}
	case tcell.KeyF1:
		ih.actionChan <- statepkg.HelpToggleAction{}

	// Editing
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.InsertTextAction{Text: "\n"}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.InsertTextAction{Text: "\t"}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.DeleteBackwardAction{}
	case tcell.KeyDelete:
		ih.actionChan <- statepkg.DeleteForwardAction{}
	case tcell.KeyCtrlA:
		ih.actionChan <- statepkg.SelectAllAction{}

	// Cursor
	case tcell.KeyLeft:
		ih.move("left", extend)
	case tcell.KeyRight:
		ih.move("right", extend)
	case tcell.KeyUp:
		ih.move("up", extend)
	case tcell.KeyDown:
		ih.move("down", extend)
	case tcell.KeyHome:
		if ctrl {
			ih.move("start", extend)
		} else {
			ih.move("home", extend)
		}
	case tcell.KeyEnd:
		if ctrl {
			ih.move("finish", extend)
		} else {
			ih.move("end", extend)
		}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollRangesAction{Delta: -1}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollRangesAction{Delta: 1}

	// Styling
	case tcell.KeyCtrlF:
		ih.actionChan <- statepkg.ApplyToSelectionAction{Target: statepkg.TargetForeground}
	case tcell.KeyCtrlG:
		ih.actionChan <- statepkg.ApplyToSelectionAction{Target: statepkg.TargetBackground}
	case tcell.KeyCtrlB:
		ih.actionChan <- statepkg.ToggleBoldAction{}
	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.ToggleUnderlineAction{}
	case tcell.KeyF2:
		ih.actionChan <- statepkg.CycleCurrentColorAction{Target: statepkg.TargetForeground, Step: -1}
	case tcell.KeyF3:
		ih.actionChan <- statepkg.CycleCurrentColorAction{Target: statepkg.TargetForeground, Step: 1}
	case tcell.KeyF4:
		ih.actionChan <- statepkg.CycleCurrentColorAction{Target: statepkg.TargetBackground, Step: -1}
	case tcell.KeyF5:
		ih.actionChan <- statepkg.CycleCurrentColorAction{Target: statepkg.TargetBackground, Step: 1}
	case tcell.KeyF6:
		ih.actionChan <- statepkg.PromoteCurrentToDefaultAction{Target: statepkg.TargetForeground}
	case tcell.KeyF7:
		ih.actionChan <- statepkg.PromoteCurrentToDefaultAction{Target: statepkg.TargetBackground}
	case tcell.KeyCtrlD:
		ih.actionChan <- statepkg.RemoveRangeAtCursorAction{}
	case tcell.KeyCtrlX:
		ih.actionChan <- statepkg.ClearRangesAction{}
	case tcell.KeyCtrlR:
		ih.actionChan <- statepkg.ResetAllAction{}

	// Outside world
	case tcell.KeyCtrlY:
		ih.actionChan <- statepkg.CopyAction{}
	case tcell.KeyCtrlE:
		if ih.state == nil || ih.state.EditorAvailable {
			ih.actionChan <- statepkg.OpenEditorAction{}
		}
	case tcell.KeyCtrlO:
		ih.actionChan <- statepkg.OpenPagerAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}

	case tcell.KeyRune:
		if ctrl {
			// Some terminals report Ctrl+letter as a modified rune.
			if key, ok := ctrlLetterKey(ev.Rune()); ok {
				return ih.processKeyEvent(tcell.NewEventKey(key, 0, tcell.ModCtrl))
			}
			return true
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return true
		}
		ih.actionChan <- statepkg.InsertTextAction{Text: string(ev.Rune())}
	}
	return true
}

func ctrlLetterKey(r rune) (tcell.Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return tcell.KeyCtrlA + tcell.Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return tcell.KeyCtrlA + tcell.Key(r-'A'), true
	}
	return 0, false
}

// processHelpKey handles keys while the help overlay is open; only closing
// it and quitting are honored.
func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyEscape, tcell.KeyF1:
		ih.actionChan <- statepkg.HelpHideAction{}
	case tcell.KeyRune:
		if r := ev.Rune(); r == '?' || r == 'q' || r == 'Q' {
			ih.actionChan <- statepkg.HelpHideAction{}
		}
	}
	return true
}

func (ih *InputHandler) move(direction string, extend bool) {
	ih.actionChan <- statepkg.MoveCursorAction{Direction: direction, Extend: extend}
}
