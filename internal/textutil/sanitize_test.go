package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "Welcome to Discord Text Generator!"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\ntext\tend"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m text end" {
		t.Fatalf("expected %q, got %q", "bad?[31m text end", got)
	}
	if strings.ContainsFunc(got, isControl) {
		t.Fatalf("sanitized text should not contain control characters: %q", got)
	}
}

func TestSanitizeTerminalTextLabelsInvisibleRunes(t *testing.T) {
	input := "a\u202eb\u200bc\u00ad"
	got := SanitizeTerminalText(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("sanitize left formatting runes in output: %q", got)
	}
	for _, label := range []string{"⟪RLO⟫", "⟪ZWSP⟫", "⟪SHY⟫"} {
		if !strings.Contains(got, label) {
			t.Fatalf("expected %s in %q", label, got)
		}
	}
}

func TestSanitizeRune(t *testing.T) {
	tests := []struct {
		in      rune
		want    string
		changed bool
	}{
		{'a', "a", false},
		{'\t', "\t", false},
		{'\n', "\n", false},
		{0x1b, "?", true},
		{0x7f, "?", true},
		{0x85, "?", true},
		{0xFEFF, "⟪BOM⟫", true},
		{'ż', "ż", false},
	}
	for _, tt := range tests {
		got, changed := SanitizeRune(tt.in)
		if got != tt.want || changed != tt.changed {
			t.Fatalf("SanitizeRune(%U) = (%q,%v), want (%q,%v)", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestSanitizeClusterKeepsEmojiSequences(t *testing.T) {
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	if got := SanitizeCluster(family); got != family {
		t.Fatalf("SanitizeCluster(family) = %q", got)
	}
	if got := SanitizeCluster("\u200d"); got != "⟪ZWJ⟫" {
		t.Fatalf("lone joiner = %q", got)
	}
	if got := SanitizeCluster("\x07"); got != "?" {
		t.Fatalf("bell = %q", got)
	}
}
