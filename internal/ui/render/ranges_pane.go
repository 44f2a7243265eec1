package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/styling"
	textutil "github.com/kk-code-lab/ansigen/internal/textutil"
)

const (
	rangeSampleWidth = 12
	swatchText       = "Aa"
)

// rangesWindow returns the first visible range index so that the window is
// filled and starts at scroll when possible.
func rangesWindow(total, rows, scroll int) int {
	if scroll > total-rows {
		scroll = total - rows
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// formatRangeLine describes one declared range without its sample text.
func formatRangeLine(index int, rg styling.Range) string {
	var flags []string
	if rg.Style.Bold {
		flags = append(flags, "bold")
	}
	if rg.Style.Underline {
		flags = append(flags, "underline")
	}
	line := fmt.Sprintf("%2d  %4d–%-4d  fg %-7s bg %-7s", index, rg.Start, rg.End, rg.Style.Foreground, rg.Style.Background)
	if len(flags) > 0 {
		line += "  " + strings.Join(flags, " ")
	}
	return line
}

// quantizedStyle shows a style with the palette colors the ANSI output
// will select, which can differ noticeably from the chosen hex.
func quantizedStyle(s styling.Style) tcell.Style {
	fg, ok := styling.PaletteRGB(styling.Quantize(s.Foreground))
	if !ok {
		fg = s.Foreground.OrWhite()
	}
	bg, ok := styling.PaletteRGB(styling.Quantize(s.Background))
	if !ok {
		bg = s.Background.OrWhite()
	}
	return documentStyle(styling.Style{Foreground: fg, Background: bg, Bold: s.Bold, Underline: s.Underline})
}

// rangeSample returns the covered text flattened to one line.
func rangeSample(text string, rg styling.Range) string {
	runes := []rune(text)
	if rg.Start < 0 || rg.End > len(runes) || rg.Start >= rg.End {
		return ""
	}
	return textutil.SanitizeTerminalText(string(runes[rg.Start:rg.End]))
}

func (r *Renderer) drawRanges(state *statepkg.AppState, layout layoutMetrics, w int) {
	titleStyle := tcell.StyleDefault.Foreground(r.theme.PaneTitleFg).Bold(true)
	title := fmt.Sprintf("── Ranges (%d) ", len(state.Ranges))
	x := r.drawTextLine(0, layout.rangesTitleRow, w, title, titleStyle)
	for ; x < w; x++ {
		r.screen.SetContent(x, layout.rangesTitleRow, '─', nil, titleStyle)
	}

	muted := tcell.StyleDefault.Foreground(r.theme.MutedFg)
	if len(state.Ranges) == 0 {
		hint := " no ranges: select text with Shift+arrows, then Ctrl+F / Ctrl+G"
		r.drawTextLine(0, layout.rangesTop, w, textutil.Truncate(hint, w), muted)
		return
	}

	selected := state.CursorRangeIndex()
	first := rangesWindow(len(state.Ranges), layout.rangesHeight, state.RangesScroll)
	for row := 0; row < layout.rangesHeight; row++ {
		idx := first + row
		if idx >= len(state.Ranges) {
			break
		}
		rg := state.Ranges[idx]
		y := layout.rangesTop + row

		lineStyle := tcell.StyleDefault
		if idx == selected {
			lineStyle = lineStyle.Background(r.theme.SelectedRangeBg).Foreground(r.theme.SelectedRangeFg)
		}
		x := r.drawTextLine(0, y, w, " ", lineStyle)
		sample := textutil.PadRight(textutil.Truncate(rangeSample(state.Text, rg), rangeSampleWidth), rangeSampleWidth)
		x = r.drawTextLine(x, y, w-x, sample, documentStyle(rg.Style))
		x = r.drawTextLine(x, y, w-x, " ", lineStyle)
		x = r.drawTextLine(x, y, w-x, swatchText, quantizedStyle(rg.Style))
		x = r.drawTextLine(x, y, w-x, " "+textutil.Truncate(formatRangeLine(idx, rg), w-x-1), lineStyle)
		if idx == selected {
			for ; x < w; x++ {
				r.screen.SetContent(x, y, ' ', nil, lineStyle)
			}
		}
	}
}
