package state

import (
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/ansigen/internal/styling"
)

// Builtin defaults, used when no configuration overrides them.
const (
	DefaultSeedText   = "Welcome to Discord Text Generator!"
	DefaultForeground = "#ffffff"
	DefaultBackground = "#36393f"
)

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Document
	Text         string
	Ranges       styling.RangeSet // sorted, non-overlapping
	DefaultStyle styling.Style
	CurrentStyle styling.Style

	// Values restored by ResetAllAction
	Baseline styling.Style
	Palette  []styling.Color
	Encode   styling.EncodeOptions

	// Editor
	Cursor          int // rune offset
	SelectionAnchor int
	SelectionActive bool
	preferredColumn int

	// View
	HelpVisible  bool
	RangesScroll int
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	EditorAvailable    bool
	LastCopyTime       time.Time
	LastCopyBytes      int

	// Error state
	LastError error
}

// Options seeds a new state.
type Options struct {
	SeedText   string
	Foreground styling.Color
	Background styling.Color
	Palette    []styling.Color
	Encode     styling.EncodeOptions
}

// NewAppState builds the initial state. Absent colors fall back to the
// builtin defaults.
func NewAppState(opts Options) *AppState {
	fg, bg := opts.Foreground, opts.Background
	if !fg.Valid {
		fg = styling.MustParseColor(DefaultForeground)
	}
	if !bg.Valid {
		bg = styling.MustParseColor(DefaultBackground)
	}
	baseline := styling.Style{Foreground: fg, Background: bg}
	text := normalizeText(opts.SeedText)
	return &AppState{
		Text:         text,
		DefaultStyle: baseline,
		CurrentStyle: baseline,
		Baseline:     baseline,
		Palette:      append([]styling.Color(nil), opts.Palette...),
		Encode:       opts.Encode,
		Cursor:       utf8.RuneCountInString(text),
	}
}

// ===== HELPER METHODS =====

// TextLen reports the text length in runes.
func (s *AppState) TextLen() int {
	return utf8.RuneCountInString(s.Text)
}

// Snapshot copies the values the renderer needs.
func (s *AppState) Snapshot() styling.Snapshot {
	return styling.Snapshot{
		Text:    s.Text,
		Ranges:  s.Ranges.Clone(),
		Default: s.DefaultStyle,
		Current: s.CurrentStyle,
	}
}

// ANSI renders the current document for the clipboard.
func (s *AppState) ANSI() string {
	return styling.EncodeANSI(s.Snapshot(), s.Encode)
}

// PreviewUnits renders the current document for on-screen display.
func (s *AppState) PreviewUnits() []styling.PreviewUnit {
	return styling.Preview(s.Snapshot())
}

// Selection returns the ordered selection bounds, and false when nothing
// is selected.
func (s *AppState) Selection() (start, end int, ok bool) {
	if !s.SelectionActive || s.SelectionAnchor == s.Cursor {
		return s.Cursor, s.Cursor, false
	}
	if s.SelectionAnchor < s.Cursor {
		return s.SelectionAnchor, s.Cursor, true
	}
	return s.Cursor, s.SelectionAnchor, true
}

// CursorRangeIndex returns the index of the range under the cursor, or -1.
// A cursor sitting just past the end of a range still selects it.
func (s *AppState) CursorRangeIndex() int {
	if idx := s.Ranges.IndexAt(s.Cursor); idx >= 0 {
		return idx
	}
	if s.Cursor > 0 {
		return s.Ranges.IndexAt(s.Cursor - 1)
	}
	return -1
}

// CopyFlashActive reports whether the "copied" indicator should show.
func (s *AppState) CopyFlashActive(now time.Time) bool {
	return !s.LastCopyTime.IsZero() && now.Sub(s.LastCopyTime) < CopyFlashDuration
}

// CopyFlashDuration is how long the "copied" indicator stays visible.
const CopyFlashDuration = 2 * time.Second
