package textutil

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop used by the editor pane.
const DefaultTabWidth = 4

// DisplayWidth reports the number of terminal columns text occupies,
// measured per grapheme cluster so flags and emoji sequences count once.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// ClusterWidth is DisplayWidth for a single grapheme cluster; it never
// returns less than one so that every cluster owns a cell.
func ClusterWidth(cluster string) int {
	if w := uniseg.StringWidth(cluster); w > 0 {
		return w
	}
	return 1
}

// TabAdvance returns the columns a tab at column advances.
func TabAdvance(column, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return tabWidth - column%tabWidth
}

// Truncate shortens text to width columns, ending with an ellipsis when cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// PadRight pads text with spaces to width columns.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}
