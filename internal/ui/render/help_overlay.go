package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/ansigen/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Editing",
		entries: []helpOverlayEntry{
			{keys: "type / ↵ / Tab", desc: "Insert text"},
			{keys: "⌫ / Del", desc: "Delete"},
			{keys: "←↑↓→ Home End", desc: "Move cursor (Shift extends selection)"},
			{keys: "Ctrl+Home/End", desc: "Start / end of text"},
			{keys: "Ctrl+A", desc: "Select all"},
			{keys: "Esc", desc: "Clear selection"},
		},
	},
	{
		title: "Styling",
		entries: []helpOverlayEntry{
			{keys: "Ctrl+F", desc: "Apply current foreground to selection"},
			{keys: "Ctrl+G", desc: "Apply current background to selection"},
			{keys: "Ctrl+B / Ctrl+U", desc: "Toggle bold / underline"},
			{keys: "F2 / F3", desc: "Previous / next foreground"},
			{keys: "F4 / F5", desc: "Previous / next background"},
			{keys: "F6 / F7", desc: "Use current fg / bg as default"},
			{keys: "Ctrl+D", desc: "Remove range under cursor"},
			{keys: "Ctrl+X", desc: "Clear all ranges"},
			{keys: "Ctrl+R", desc: "Reset colors and ranges"},
			{keys: "PgUp / PgDn", desc: "Scroll range list"},
		},
	},
	{
		title: "Output",
		entries: []helpOverlayEntry{
			{keys: "Ctrl+Y", desc: "Copy ANSI block to clipboard"},
			{keys: "Ctrl+E", desc: "Edit text in external editor ($EDITOR)"},
			{keys: "Ctrl+O", desc: "View ANSI block in pager ($PAGER)"},
		},
	},
	{
		title: "Exit",
		entries: []helpOverlayEntry{
			{keys: "Ctrl+Z", desc: "Suspend"},
			{keys: "Ctrl+Q / Ctrl+C", desc: "Quit"},
			{keys: "F1 / Esc", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 32)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.PadRight(textutil.SanitizeTerminalText(entry.keys), 18)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if titleWidth := textutil.DisplayWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines() {
		if row >= maxRow {
			break
		}
		text := textutil.Truncate(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := textutil.Truncate("F1 toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
