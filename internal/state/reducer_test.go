package state

import (
	"testing"

	"github.com/kk-code-lab/ansigen/internal/styling"
)

var (
	red  = styling.MustParseColor("#ff0000")
	blue = styling.MustParseColor("#0000ff")
)

func newTestState(text string) *AppState {
	return NewAppState(Options{
		SeedText: text,
		Palette: []styling.Color{
			styling.MustParseColor("#ffffff"),
			red,
			blue,
		},
	})
}

func mustReduce(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%T) error: %v", a, err)
		}
	}
}

func TestNewAppStateDefaults(t *testing.T) {
	s := NewAppState(Options{SeedText: DefaultSeedText})
	if s.DefaultStyle.Foreground.Hex() != DefaultForeground || s.DefaultStyle.Background.Hex() != DefaultBackground {
		t.Fatalf("default style = %+v", s.DefaultStyle)
	}
	if s.CurrentStyle != s.DefaultStyle {
		t.Fatalf("current style %+v should start equal to default %+v", s.CurrentStyle, s.DefaultStyle)
	}
	if s.Cursor != s.TextLen() {
		t.Fatalf("cursor = %d, want end of text %d", s.Cursor, s.TextLen())
	}
	if len(s.Ranges) != 0 {
		t.Fatalf("expected no ranges")
	}
}

func TestDeclareRangeExampleTwo(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello World")
	mustReduce(t, r, s,
		SetCurrentForegroundAction{Hex: "#ff0000"},
		SetCurrentBoldAction{Bold: true},
		DeclareRangeAction{Start: 0, End: 5, Target: TargetForeground},
		SetCurrentForegroundAction{Hex: "#0000ff"},
		SetCurrentBoldAction{Bold: false},
		DeclareRangeAction{Start: 6, End: 11, Target: TargetForeground},
	)

	var segs []styling.Segment
	for seg := range styling.Segments(s.Snapshot()) {
		segs = append(segs, seg)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Text != "Hello" || segs[0].Style.Foreground != red || !segs[0].Style.Bold {
		t.Fatalf("segment 0 = %+v", segs[0])
	}
	if segs[1].Text != " " || !segs[1].Default {
		t.Fatalf("segment 1 = %+v", segs[1])
	}
	if segs[2].Text != "World" || segs[2].Style.Foreground != blue || segs[2].Style.Bold {
		t.Fatalf("segment 2 = %+v", segs[2])
	}
	if segs[2].Style.Background != s.DefaultStyle.Background {
		t.Fatalf("unapplied background should come from default, got %v", segs[2].Style.Background)
	}
}

func TestDeclareRangeIdenticalBoundsKeepsOtherChannel(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s,
		SetCurrentForegroundAction{Hex: "#ff0000"},
		DeclareRangeAction{Start: 0, End: 5, Target: TargetForeground},
		SetCurrentBackgroundAction{Hex: "#0000ff"},
		SetCurrentForegroundAction{Hex: "#00ff00"},
		SetCurrentUnderlineAction{Underline: true},
		DeclareRangeAction{Start: 0, End: 5, Target: TargetBackground},
	)
	if len(s.Ranges) != 1 {
		t.Fatalf("expected one range, got %d", len(s.Ranges))
	}
	got := s.Ranges[0].Style
	if got.Foreground != red {
		t.Fatalf("foreground = %v, want kept %v", got.Foreground, red)
	}
	if got.Background != blue {
		t.Fatalf("background = %v, want applied %v", got.Background, blue)
	}
	if !got.Underline {
		t.Fatalf("underline should follow the current style")
	}
}

func TestDeclareRangeOverlapReplaces(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("0123456789")
	mustReduce(t, r, s,
		DeclareRangeAction{Start: 0, End: 5},
		DeclareRangeAction{Start: 2, End: 8},
	)
	if len(s.Ranges) != 1 || s.Ranges[0].Start != 2 || s.Ranges[0].End != 8 {
		t.Fatalf("ranges = %+v, want only [2,8)", s.Ranges)
	}
}

func TestDeclareRangeDegenerateIsNoop(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("abc")
	mustReduce(t, r, s, DeclareRangeAction{Start: 2, End: 2}, DeclareRangeAction{Start: 3, End: 1})
	if len(s.Ranges) != 0 {
		t.Fatalf("expected no ranges, got %+v", s.Ranges)
	}
}

func TestDeclareRangePastTextIsIgnored(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s,
		DeclareRangeAction{Start: 0, End: 3},
		DeclareRangeAction{Start: 0, End: 50},
		DeclareRangeAction{Start: -1, End: 2},
	)
	if len(s.Ranges) != 1 || s.Ranges[0].End != 3 {
		t.Fatalf("ranges = %+v, want only [0,3)", s.Ranges)
	}

	mustReduce(t, r, s, MoveCursorAction{Direction: "end"}, InsertTextAction{Text: "!"})
	if len(s.Ranges) != 1 {
		t.Fatalf("growing edit dropped ranges: %+v", s.Ranges)
	}
}

func TestSetTextShrinkClearsAllRanges(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("aaaaaaaaaaaaaaaaaaaa")
	mustReduce(t, r, s,
		DeclareRangeAction{Start: 3, End: 8},
		DeclareRangeAction{Start: 12, End: 18},
		SetTextAction{Text: "aaaaaaaaaa"},
	)
	if len(s.Ranges) != 0 {
		t.Fatalf("expected ranges cleared, got %+v", s.Ranges)
	}
	if s.Cursor > s.TextLen() {
		t.Fatalf("cursor %d past text end %d", s.Cursor, s.TextLen())
	}
}

func TestSetTextGrowKeepsRanges(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s, DeclareRangeAction{Start: 0, End: 5}, SetTextAction{Text: "Hello there"})
	if len(s.Ranges) != 1 {
		t.Fatalf("expected range kept, got %+v", s.Ranges)
	}
}

func TestSetTextNormalizes(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("")
	mustReduce(t, r, s, SetTextAction{Text: "e\u0301\r\nx"})
	if s.Text != "\u00e9\nx" {
		t.Fatalf("text = %q, want NFC with LF", s.Text)
	}
	if s.TextLen() != 3 {
		t.Fatalf("TextLen = %d, want 3", s.TextLen())
	}
}

func TestRemoveAndClearRanges(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("0123456789")
	mustReduce(t, r, s,
		DeclareRangeAction{Start: 0, End: 2},
		DeclareRangeAction{Start: 4, End: 6},
		RemoveRangeAction{Index: 7},
	)
	if len(s.Ranges) != 2 {
		t.Fatalf("out-of-range removal changed ranges: %+v", s.Ranges)
	}
	mustReduce(t, r, s, RemoveRangeAction{Index: 0})
	if len(s.Ranges) != 1 || s.Ranges[0].Start != 4 {
		t.Fatalf("ranges = %+v, want [4,6)", s.Ranges)
	}
	mustReduce(t, r, s, ClearRangesAction{})
	if len(s.Ranges) != 0 {
		t.Fatalf("expected empty ranges")
	}
}

func TestResetAll(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s,
		SetDefaultForegroundAction{Hex: "#123456"},
		SetDefaultBackgroundAction{Hex: "#654321"},
		SetCurrentForegroundAction{Hex: "#ff0000"},
		SetCurrentBoldAction{Bold: true},
		SetCurrentUnderlineAction{Underline: true},
		DeclareRangeAction{Start: 0, End: 2},
		ResetAllAction{},
	)
	if s.DefaultStyle != s.Baseline || s.CurrentStyle != s.Baseline {
		t.Fatalf("styles not reset: default=%+v current=%+v", s.DefaultStyle, s.CurrentStyle)
	}
	if len(s.Ranges) != 0 {
		t.Fatalf("ranges not cleared")
	}
	if s.Text != "Hello" {
		t.Fatalf("text should survive reset, got %q", s.Text)
	}
}

func TestInvalidHexStoresAbsentColor(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("x")
	mustReduce(t, r, s, SetDefaultForegroundAction{Hex: "not-a-color"})
	if s.DefaultStyle.Foreground.Valid {
		t.Fatalf("expected absent color, got %v", s.DefaultStyle.Foreground)
	}
	if got := s.ANSI(); got != "```ansi\n\x1b[38;5;15;48;5;237mx\x1b[0m\n```" {
		t.Fatalf("ANSI = %q", got)
	}
}

func TestApplyToSelection(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello World")
	mustReduce(t, r, s,
		MoveCursorAction{Direction: "start"},
		MoveCursorAction{Direction: "right", Extend: true},
		MoveCursorAction{Direction: "right", Extend: true},
		SetCurrentBackgroundAction{Hex: "#0000ff"},
		ApplyToSelectionAction{Target: TargetBackground},
	)
	if len(s.Ranges) != 1 || s.Ranges[0].Start != 0 || s.Ranges[0].End != 2 {
		t.Fatalf("ranges = %+v, want [0,2)", s.Ranges)
	}
	if s.Ranges[0].Style.Background != blue {
		t.Fatalf("background = %v", s.Ranges[0].Style.Background)
	}
}

func TestApplyWithoutSelectionIsNoop(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s, ApplyToSelectionAction{Target: TargetForeground})
	if len(s.Ranges) != 0 {
		t.Fatalf("expected no ranges, got %+v", s.Ranges)
	}
}

func TestRemoveRangeAtCursor(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello World")
	mustReduce(t, r, s,
		DeclareRangeAction{Start: 0, End: 5},
		DeclareRangeAction{Start: 6, End: 11},
		MoveCursorAction{Direction: "start"},
		MoveCursorAction{Direction: "right"},
		RemoveRangeAtCursorAction{},
	)
	if len(s.Ranges) != 1 || s.Ranges[0].Start != 6 {
		t.Fatalf("ranges = %+v, want only [6,11)", s.Ranges)
	}
}

func TestCycleCurrentColor(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("x")
	mustReduce(t, r, s, CycleCurrentColorAction{Target: TargetForeground, Step: 1})
	if s.CurrentStyle.Foreground != red {
		t.Fatalf("after +1 foreground = %v, want red", s.CurrentStyle.Foreground)
	}
	mustReduce(t, r, s, CycleCurrentColorAction{Target: TargetForeground, Step: 1}, CycleCurrentColorAction{Target: TargetForeground, Step: 1})
	if s.CurrentStyle.Foreground.Hex() != "#ffffff" {
		t.Fatalf("cycling should wrap, got %v", s.CurrentStyle.Foreground)
	}
	mustReduce(t, r, s, CycleCurrentColorAction{Target: TargetBackground, Step: -1})
	if s.CurrentStyle.Background != blue {
		t.Fatalf("background not in palette should start from last entry, got %v", s.CurrentStyle.Background)
	}
}

func TestPromoteAndToggles(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("x")
	mustReduce(t, r, s,
		SetCurrentForegroundAction{Hex: "#ff0000"},
		PromoteCurrentToDefaultAction{Target: TargetForeground},
		ToggleBoldAction{},
		ToggleUnderlineAction{},
	)
	if s.DefaultStyle.Foreground != red {
		t.Fatalf("default foreground = %v", s.DefaultStyle.Foreground)
	}
	if !s.CurrentStyle.Bold || !s.CurrentStyle.Underline {
		t.Fatalf("toggles not applied: %+v", s.CurrentStyle)
	}
}

func TestUnknownActionReturnsError(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("x")
	if _, err := r.Reduce(s, struct{}{}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestHelpActions(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("x")
	mustReduce(t, r, s, HelpToggleAction{})
	if !s.HelpVisible {
		t.Fatalf("help should be visible")
	}
	mustReduce(t, r, s, HelpHideAction{})
	if s.HelpVisible {
		t.Fatalf("help should be hidden")
	}
}

func TestApplySettingsKeepsDocument(t *testing.T) {
	r := NewStateReducer()
	s := newTestState("Hello")
	mustReduce(t, r, s,
		SetCurrentForegroundAction{Hex: "#ff0000"},
		DeclareRangeAction{Start: 0, End: 5, Target: TargetForeground},
	)
	before := s.Ranges.Clone()

	green := styling.MustParseColor("#00ff00")
	mustReduce(t, r, s, ApplySettingsAction{
		Palette: []styling.Color{green},
		Encode:  styling.EncodeOptions{Language: "txt", Coalesce: true},
	})

	if len(s.Palette) != 1 || s.Palette[0] != green {
		t.Fatalf("Palette = %v", s.Palette)
	}
	if s.Encode.Language != "txt" || !s.Encode.Coalesce {
		t.Fatalf("Encode = %+v", s.Encode)
	}
	if len(s.Ranges) != len(before) || s.Ranges[0] != before[0] {
		t.Fatalf("ranges changed: %v -> %v", before, s.Ranges)
	}

	mustReduce(t, r, s, ApplySettingsAction{})
	if len(s.Palette) != 1 {
		t.Fatalf("empty palette should keep the current one, got %v", s.Palette)
	}
}
