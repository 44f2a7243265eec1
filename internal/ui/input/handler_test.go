package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
)

func newHandler(state *statepkg.AppState) (*InputHandler, chan statepkg.Action) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)
	return handler, actionChan
}

func nextAction(t *testing.T, ch chan statepkg.Action) statepkg.Action {
	t.Helper()
	select {
	case action := <-ch:
		return action
	default:
		t.Fatal("expected an action to be emitted")
		return nil
	}
}

func assertNoAction(t *testing.T, ch chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-ch:
		t.Fatalf("expected no action, got %T", action)
	default:
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"rune inserts", tcell.NewEventKey(tcell.KeyRune, 'ż', 0), statepkg.InsertTextAction{Text: "ż"}},
		{"shifted rune inserts", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), statepkg.InsertTextAction{Text: "A"}},
		{"enter inserts newline", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.InsertTextAction{Text: "\n"}},
		{"tab inserts tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), statepkg.InsertTextAction{Text: "\t"}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.DeleteBackwardAction{}},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, 0), statepkg.DeleteForwardAction{}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.MoveCursorAction{Direction: "left"}},
		{"shift right extends", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), statepkg.MoveCursorAction{Direction: "right", Extend: true}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.MoveCursorAction{Direction: "up"}},
		{"shift down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift), statepkg.MoveCursorAction{Direction: "down", Extend: true}},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.MoveCursorAction{Direction: "home"}},
		{"ctrl end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl), statepkg.MoveCursorAction{Direction: "finish"}},
		{"ctrl home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), statepkg.MoveCursorAction{Direction: "start"}},
		{"select all", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), statepkg.SelectAllAction{}},
		{"escape clears selection", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.ClearSelectionAction{}},
		{"apply fg", tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), statepkg.ApplyToSelectionAction{Target: statepkg.TargetForeground}},
		{"apply bg", tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl), statepkg.ApplyToSelectionAction{Target: statepkg.TargetBackground}},
		{"bold", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), statepkg.ToggleBoldAction{}},
		{"underline", tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), statepkg.ToggleUnderlineAction{}},
		{"prev fg", tcell.NewEventKey(tcell.KeyF2, 0, 0), statepkg.CycleCurrentColorAction{Target: statepkg.TargetForeground, Step: -1}},
		{"next fg", tcell.NewEventKey(tcell.KeyF3, 0, 0), statepkg.CycleCurrentColorAction{Target: statepkg.TargetForeground, Step: 1}},
		{"prev bg", tcell.NewEventKey(tcell.KeyF4, 0, 0), statepkg.CycleCurrentColorAction{Target: statepkg.TargetBackground, Step: -1}},
		{"next bg", tcell.NewEventKey(tcell.KeyF5, 0, 0), statepkg.CycleCurrentColorAction{Target: statepkg.TargetBackground, Step: 1}},
		{"promote fg", tcell.NewEventKey(tcell.KeyF6, 0, 0), statepkg.PromoteCurrentToDefaultAction{Target: statepkg.TargetForeground}},
		{"promote bg", tcell.NewEventKey(tcell.KeyF7, 0, 0), statepkg.PromoteCurrentToDefaultAction{Target: statepkg.TargetBackground}},
		{"remove range", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), statepkg.RemoveRangeAtCursorAction{}},
		{"clear ranges", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), statepkg.ClearRangesAction{}},
		{"reset", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), statepkg.ResetAllAction{}},
		{"copy", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), statepkg.CopyAction{}},
		{"pager", tcell.NewEventKey(tcell.KeyCtrlO, 0, tcell.ModCtrl), statepkg.OpenPagerAction{}},
		{"suspend", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.SuspendAction{}},
		{"help", tcell.NewEventKey(tcell.KeyF1, 0, 0), statepkg.HelpToggleAction{}},
		{"scroll ranges", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.ScrollRangesAction{Delta: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, ch := newHandler(&statepkg.AppState{EditorAvailable: true})
			if !handler.ProcessEvent(tt.ev) {
				t.Fatalf("ProcessEvent returned false for %s", tt.name)
			}
			got := nextAction(t, ch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestQuitKeysStopProcessing(t *testing.T) {
	for _, key := range []tcell.Key{tcell.KeyCtrlC, tcell.KeyCtrlQ} {
		handler, ch := newHandler(&statepkg.AppState{})
		if handler.ProcessEvent(tcell.NewEventKey(key, 0, tcell.ModCtrl)) {
			t.Fatalf("key %v should stop processing", key)
		}
		if _, ok := nextAction(t, ch).(statepkg.QuitAction); !ok {
			t.Fatalf("expected QuitAction for %v", key)
		}
	}
}

func TestEditorKeyRequiresEditor(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{EditorAvailable: false})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl))
	assertNoAction(t, ch)

	handler.SetState(&statepkg.AppState{EditorAvailable: true})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl))
	if _, ok := nextAction(t, ch).(statepkg.OpenEditorAction); !ok {
		t.Fatalf("expected OpenEditorAction")
	}
}

func TestAltRunesAreIgnored(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))
	assertNoAction(t, ch)
}

func TestCtrlModifiedRuneMapsToControlKey(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModCtrl))
	got := nextAction(t, ch)
	if want := (statepkg.ApplyToSelectionAction{Target: statepkg.TargetForeground}); got != want {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModCtrl)) {
		t.Fatalf("ctrl+Q rune should quit")
	}
}

func TestEscapeHidesHelp(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{HelpVisible: true})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if _, ok := nextAction(t, ch).(statepkg.HelpHideAction); !ok {
		t.Fatalf("expected HelpHideAction")
	}
}

func TestHelpSwallowsEditingKeys(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{HelpVisible: true})
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'a', 0))
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl))
	assertNoAction(t, ch)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if _, ok := nextAction(t, ch).(statepkg.HelpHideAction); !ok {
		t.Fatalf("q should close help without quitting")
	}
	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatalf("ctrl-c should still quit while help is visible")
	}
}

func TestResizeEmitsAction(t *testing.T) {
	handler, ch := newHandler(&statepkg.AppState{})
	handler.ProcessEvent(tcell.NewEventResize(100, 30))
	got := nextAction(t, ch)
	if want := (statepkg.ResizeAction{Width: 100, Height: 30}); got != want {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
