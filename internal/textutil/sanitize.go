package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// invisibleLabels name runes that render as nothing or reorder text.
var invisibleLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeRune returns a printable stand-in for r and whether r needed one.
// Control characters become '?', invisible formatting runes a bracketed label.
// Tabs and newlines are left to the caller.
func SanitizeRune(r rune) (string, bool) {
	if label, ok := invisibleLabels[r]; ok {
		return label, true
	}
	if r == '\t' || r == '\n' {
		return string(r), false
	}
	if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
		return "?", true
	}
	return string(r), false
}

// SanitizeCluster makes a grapheme cluster safe to draw. Joiners inside a
// multi-rune cluster (emoji sequences) are kept.
func SanitizeCluster(cluster string) string {
	if uniseg.GraphemeClusterCount(cluster) == 1 && len([]rune(cluster)) > 1 {
		if !strings.ContainsFunc(cluster, isControl) {
			return cluster
		}
	}
	var b strings.Builder
	for _, r := range cluster {
		s, _ := SanitizeRune(r)
		b.WriteString(s)
	}
	return b.String()
}

// SanitizeTerminalText flattens text to one safe line: newlines and tabs
// become spaces and everything SanitizeRune rewrites is rewritten.
func SanitizeTerminalText(text string) string {
	if !strings.ContainsFunc(text, needsRewrite) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\t', '\n', '\r':
			b.WriteByte(' ')
		default:
			s, _ := SanitizeRune(r)
			b.WriteString(s)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

func needsRewrite(r rune) bool {
	if _, ok := invisibleLabels[r]; ok {
		return true
	}
	return isControl(r)
}
