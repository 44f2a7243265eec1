package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/styling"
	textutil "github.com/kk-code-lab/ansigen/internal/textutil"
	"github.com/rivo/uniseg"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen    tcell.Screen
	theme     ColorTheme
	now       func() time.Time
	editorTop int // first visible wrapped line of the editor pane
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state.HelpVisible {
		r.screen.HideCursor()
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	layout := computeLayout(h, len(state.Ranges))
	r.drawHeader(state, w)
	r.drawEditor(state, 0, layout.editorTop, w, layout.editorHeight)
	if layout.rangesTitleRow >= 0 {
		r.drawRanges(state, layout, w)
	}
	if layout.statusRow >= 0 {
		r.drawStatusLine(state, layout.statusRow, w)
	}
	if layout.footerRow >= 0 {
		r.drawFooter(state, layout.footerRow, w)
	}
	r.screen.Show()
}

// drawHeader renders the title and the style that the next range will get.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, 0, w, " ansigen ", headerStyle.Bold(true))

	x = r.drawTextLine(x, 0, w-x, " current ", headerStyle)
	x = r.drawTextLine(x, 0, w-x, " Abc ", documentStyle(state.CurrentStyle))
	x = r.drawTextLine(x, 0, w-x, " "+describeStyle(state.CurrentStyle), headerStyle)

	x = r.drawTextLine(x, 0, w-x, "   default ", headerStyle)
	x = r.drawTextLine(x, 0, w-x, " Abc ", documentStyle(styling.Style{
		Foreground: state.DefaultStyle.Foreground,
		Background: state.DefaultStyle.Background,
	}))
	x = r.drawTextLine(x, 0, w-x, " "+describeColors(state.DefaultStyle), headerStyle)

	for ; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, headerStyle)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, y, w int) {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.MutedFg)

	left := fmt.Sprintf(" ANSI %d bytes · %d ranges · pos %d/%d", len(state.ANSI()), len(state.Ranges), state.Cursor, state.TextLen())
	if start, end, ok := state.Selection(); ok {
		left += fmt.Sprintf(" · sel %d–%d", start, end)
	}
	x := r.drawTextLine(0, y, w, textutil.Truncate(left, w), base)

	var right string
	rightStyle := base
	switch {
	case state.LastError != nil:
		right = "error: " + textutil.SanitizeTerminalText(state.LastError.Error())
		rightStyle = base.Foreground(r.theme.ErrorFg)
	case state.CopyFlashActive(r.now()):
		right = fmt.Sprintf("copied %d bytes", state.LastCopyBytes)
		rightStyle = base.Foreground(r.theme.SuccessFg)
	}
	if right == "" {
		return
	}
	right += " "
	avail := w - x - 1
	if avail <= 0 {
		return
	}
	right = textutil.Truncate(right, avail)
	r.drawTextLine(w-textutil.DisplayWidth(right), y, avail, right, rightStyle)
}

func (r *Renderer) drawFooter(state *statepkg.AppState, y, w int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	text := textutil.Truncate(buildFooterHelpText(state), w)
	x := r.drawTextLine(0, y, w, text, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawTextLine draws text grapheme by grapheme and returns the column after
// the last drawn cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\n" || cluster == "\t" {
			cluster = " "
		}
		cluster = textutil.SanitizeCluster(cluster)
		width := textutil.ClusterWidth(cluster)
		if x-startX+width > maxWidth {
			break
		}
		runes := []rune(cluster)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
	return x
}

// documentStyle converts a document style to a true-color screen style.
// Absent colors show as white, matching palette index 15.
func documentStyle(s styling.Style) tcell.Style {
	fg := s.Foreground.OrWhite()
	bg := s.Background.OrWhite()
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))).
		Bold(s.Bold).
		Underline(s.Underline)
}

func describeColors(s styling.Style) string {
	return fmt.Sprintf("fg %s bg %s", s.Foreground, s.Background)
}

func describeStyle(s styling.Style) string {
	parts := []string{describeColors(s)}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}
