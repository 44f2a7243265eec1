package state

import (
	"fmt"
	"unicode/utf8"

	"github.com/kk-code-lab/ansigen/internal/styling"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state in place and returns it. Actions that need
// the outside world (clipboard, editor, pager) are ignored here.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if state == nil {
		return nil, fmt.Errorf("reduce %T: nil state", action)
	}
	state.LastError = nil

	switch a := action.(type) {

	// ===== DOCUMENT =====

	case SetTextAction:
		r.setText(state, a.Text)
		return state, nil

	case SetDefaultForegroundAction:
		state.DefaultStyle.Foreground = styling.ParseColor(a.Hex)
		return state, nil

	case SetDefaultBackgroundAction:
		state.DefaultStyle.Background = styling.ParseColor(a.Hex)
		return state, nil

	case SetCurrentForegroundAction:
		state.CurrentStyle.Foreground = styling.ParseColor(a.Hex)
		return state, nil

	case SetCurrentBackgroundAction:
		state.CurrentStyle.Background = styling.ParseColor(a.Hex)
		return state, nil

	case SetCurrentBoldAction:
		state.CurrentStyle.Bold = a.Bold
		return state, nil

	case SetCurrentUnderlineAction:
		state.CurrentStyle.Underline = a.Underline
		return state, nil

	case DeclareRangeAction:
		r.declareRange(state, a.Start, a.End, a.Target)
		return state, nil

	case RemoveRangeAction:
		state.Ranges = styling.Remove(state.Ranges, a.Index)
		r.clampRangesScroll(state)
		return state, nil

	case ClearRangesAction:
		state.Ranges = styling.Clear()
		state.RangesScroll = 0
		return state, nil

	case ResetAllAction:
		state.DefaultStyle = state.Baseline
		state.CurrentStyle = state.Baseline
		state.Ranges = styling.Clear()
		state.RangesScroll = 0
		return state, nil

	// ===== EDITOR =====

	case InsertTextAction:
		r.insertText(state, a.Text)
		return state, nil

	case DeleteBackwardAction:
		if start, end, ok := state.Selection(); ok {
			r.replace(state, start, end, "")
			return state, nil
		}
		if state.Cursor == 0 {
			return state, nil
		}
		r.replace(state, prevGraphemeBoundary(state.Text, state.Cursor), state.Cursor, "")
		return state, nil

	case DeleteForwardAction:
		if start, end, ok := state.Selection(); ok {
			r.replace(state, start, end, "")
			return state, nil
		}
		if state.Cursor >= state.TextLen() {
			return state, nil
		}
		r.replace(state, state.Cursor, nextGraphemeBoundary(state.Text, state.Cursor), "")
		return state, nil

	case MoveCursorAction:
		return state, r.moveCursor(state, a.Direction, a.Extend)

	case SelectAllAction:
		state.SelectionAnchor = 0
		state.Cursor = state.TextLen()
		state.SelectionActive = state.Cursor > 0
		return state, nil

	case ClearSelectionAction:
		state.SelectionActive = false
		return state, nil

	// ===== STYLE =====

	case ApplyToSelectionAction:
		start, end, ok := state.Selection()
		if !ok {
			return state, nil
		}
		r.declareRange(state, start, end, a.Target)
		return state, nil

	case RemoveRangeAtCursorAction:
		if idx := state.CursorRangeIndex(); idx >= 0 {
			state.Ranges = styling.Remove(state.Ranges, idx)
			r.clampRangesScroll(state)
		}
		return state, nil

	case CycleCurrentColorAction:
		r.cycleColor(state, a.Target, a.Step)
		return state, nil

	case PromoteCurrentToDefaultAction:
		if a.Target == TargetBackground {
			state.DefaultStyle.Background = state.CurrentStyle.Background
		} else {
			state.DefaultStyle.Foreground = state.CurrentStyle.Foreground
		}
		return state, nil

	case ToggleBoldAction:
		state.CurrentStyle.Bold = !state.CurrentStyle.Bold
		return state, nil

	case ToggleUnderlineAction:
		state.CurrentStyle.Underline = !state.CurrentStyle.Underline
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	case ScrollRangesAction:
		state.RangesScroll += a.Delta
		r.clampRangesScroll(state)
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	case ApplySettingsAction:
		if len(a.Palette) > 0 {
			state.Palette = append([]styling.Color(nil), a.Palette...)
		}
		state.Encode = a.Encode
		return state, nil

	case CopyAction, OpenEditorAction, OpenPagerAction, SuspendAction, QuitAction:
		return state, nil
	}

	return state, fmt.Errorf("unknown action %T", action)
}

// setText replaces the whole text and drops the ranges if any of them no
// longer fits.
func (r *StateReducer) setText(state *AppState, text string) {
	state.Text = normalizeText(text)
	n := utf8.RuneCountInString(state.Text)
	state.Ranges = styling.Reconcile(state.Ranges, n)
	state.Cursor = clampInt(state.Cursor, 0, n)
	state.SelectionAnchor = clampInt(state.SelectionAnchor, 0, n)
	if state.SelectionAnchor == state.Cursor {
		state.SelectionActive = false
	}
	r.clampRangesScroll(state)
}

func (r *StateReducer) insertText(state *AppState, text string) {
	start, end, _ := state.Selection()
	r.replace(state, start, end, normalizeText(text))
}

// replace swaps runes [start,end) for insert and places the cursor after it.
func (r *StateReducer) replace(state *AppState, start, end int, insert string) {
	runes := []rune(state.Text)
	start = clampInt(start, 0, len(runes))
	end = clampInt(end, start, len(runes))
	r.setText(state, spliceRunes(runes, start, end, insert))
	state.Cursor = clampInt(start+utf8.RuneCountInString(insert), 0, state.TextLen())
	state.SelectionActive = false
	state.preferredColumn = r.column(state)
}

// declareRange resolves the style for a new declaration from the current
// style, an identical-bound range if present, and the default style.
// Bounds outside the text are ignored.
func (r *StateReducer) declareRange(state *AppState, start, end int, target Target) {
	if start < 0 || start >= end || end > state.TextLen() {
		return
	}
	current := state.CurrentStyle
	patch := styling.StylePatch{
		Bold:      &current.Bold,
		Underline: &current.Underline,
	}
	if target == TargetBackground {
		patch.Background = &current.Background
	} else {
		patch.Foreground = &current.Foreground
	}
	fallback := styling.Style{
		Foreground: state.DefaultStyle.Foreground,
		Background: state.DefaultStyle.Background,
	}
	state.Ranges = styling.Insert(state.Ranges, start, end, patch, fallback)
	r.clampRangesScroll(state)
}

func (r *StateReducer) moveCursor(state *AppState, direction string, extend bool) error {
	if extend && !state.SelectionActive {
		state.SelectionAnchor = state.Cursor
		state.SelectionActive = true
	}
	if !extend && state.SelectionActive {
		start, end, ok := state.Selection()
		state.SelectionActive = false
		if ok && (direction == "left" || direction == "right") {
			if direction == "left" {
				state.Cursor = start
			} else {
				state.Cursor = end
			}
			state.preferredColumn = r.column(state)
			return nil
		}
	}

	runes := []rune(state.Text)
	vertical := false
	switch direction {
	case "left":
		state.Cursor = prevGraphemeBoundary(state.Text, state.Cursor)
	case "right":
		state.Cursor = nextGraphemeBoundary(state.Text, state.Cursor)
	case "up":
		state.Cursor = verticalMove(runes, state.Cursor, state.preferredColumn, -1)
		vertical = true
	case "down":
		state.Cursor = verticalMove(runes, state.Cursor, state.preferredColumn, 1)
		vertical = true
	case "home":
		state.Cursor, _ = lineBounds(runes, state.Cursor)
	case "end":
		_, state.Cursor = lineBounds(runes, state.Cursor)
	case "start":
		state.Cursor = 0
	case "finish":
		state.Cursor = len(runes)
	default:
		return fmt.Errorf("unknown cursor direction %q", direction)
	}
	if !vertical {
		state.preferredColumn = r.column(state)
	}
	if state.SelectionActive && state.SelectionAnchor == state.Cursor {
		state.SelectionActive = false
	}
	return nil
}

func (r *StateReducer) column(state *AppState) int {
	runes := []rune(state.Text)
	start, _ := lineBounds(runes, clampInt(state.Cursor, 0, len(runes)))
	return state.Cursor - start
}

// cycleColor steps the current color of target through the palette. A color
// not in the palette starts from the first (or last) entry.
func (r *StateReducer) cycleColor(state *AppState, target Target, step int) {
	if len(state.Palette) == 0 || step == 0 {
		return
	}
	current := &state.CurrentStyle.Foreground
	if target == TargetBackground {
		current = &state.CurrentStyle.Background
	}
	idx := -1
	for i, c := range state.Palette {
		if c == *current {
			idx = i
			break
		}
	}
	n := len(state.Palette)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+step)%n + n) % n
	}
	*current = state.Palette[idx]
}

func (r *StateReducer) clampRangesScroll(state *AppState) {
	maxScroll := len(state.Ranges) - 1
	if maxScroll < 0 {
		maxScroll = 0
	}
	state.RangesScroll = clampInt(state.RangesScroll, 0, maxScroll)
}
