package state

import "github.com/kk-code-lab/ansigen/internal/styling"

// Action is the base interface for all state mutations
type Action interface{}

// Target selects which color channel a declaration or palette action applies to.
type Target int

const (
	TargetForeground Target = iota
	TargetBackground
)

func (t Target) String() string {
	if t == TargetBackground {
		return "background"
	}
	return "foreground"
}

// ===== DOCUMENT ACTIONS =====

type SetTextAction struct {
	Text string
}

type SetDefaultForegroundAction struct {
	Hex string
}
type SetDefaultBackgroundAction struct {
	Hex string
}
type SetCurrentForegroundAction struct {
	Hex string
}
type SetCurrentBackgroundAction struct {
	Hex string
}
type SetCurrentBoldAction struct {
	Bold bool
}
type SetCurrentUnderlineAction struct {
	Underline bool
}

// DeclareRangeAction styles [Start, End) with the current color of Target.
// The other channel is kept from an identical-bound range if one exists,
// otherwise it comes from the default style.
type DeclareRangeAction struct {
	Start  int
	End    int
	Target Target
}

type RemoveRangeAction struct {
	Index int
}
type ClearRangesAction struct{}
type ResetAllAction struct{}

// ===== EDITOR ACTIONS =====

type InsertTextAction struct {
	Text string
}
type DeleteBackwardAction struct{}
type DeleteForwardAction struct{}
type MoveCursorAction struct {
	Direction string // "left", "right", "up", "down", "home", "end", "start", "finish"
	Extend    bool   // grow the selection instead of collapsing it
}
type SelectAllAction struct{}
type ClearSelectionAction struct{}

// ===== STYLE ACTIONS =====

type ApplyToSelectionAction struct {
	Target Target
}
type RemoveRangeAtCursorAction struct{}
type CycleCurrentColorAction struct {
	Target Target
	Step   int // +1 next palette entry, -1 previous
}
type PromoteCurrentToDefaultAction struct {
	Target Target
}
type ToggleBoldAction struct{}
type ToggleUnderlineAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}
type ScrollRangesAction struct {
	Delta int
}
type HelpToggleAction struct{}
type HelpHideAction struct{}

// ApplySettingsAction swaps in a reloaded palette and encoder options.
// The document itself is left alone.
type ApplySettingsAction struct {
	Palette []styling.Color
	Encode  styling.EncodeOptions
}

// ===== APPLICATION ACTIONS =====
// Handled by the app layer; they need the clipboard, subprocesses or the screen.

type CopyAction struct{}
type OpenEditorAction struct{}
type OpenPagerAction struct{}
type SuspendAction struct{}
type QuitAction struct{}
