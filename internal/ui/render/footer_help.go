package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/ansigen/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	if _, _, ok := state.Selection(); ok {
		return []string{
			"^F: fg",
			"^G: bg",
			"Esc: deselect",
		}
	}
	segments := []string{"⇧+arrows: select"}
	if state.CursorRangeIndex() >= 0 {
		segments = append(segments, "^D: remove range")
	}
	return append(segments, "F2-F5: colors", "^B/^U: bold/underline")
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	segments := []string{"^Y: copy"}
	if state.EditorAvailable {
		segments = append(segments, "^E: edit")
	}
	return append(segments, "F1: help", "^Q: quit")
}
