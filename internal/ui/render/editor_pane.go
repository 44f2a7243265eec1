package render

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/styling"
	textutil "github.com/kk-code-lab/ansigen/internal/textutil"
	"github.com/rivo/uniseg"
)

// textCell is one grapheme cluster placed on a wrapped line.
type textCell struct {
	text   string // printable form of the cluster
	width  int
	offset int // rune offset of the cluster in the document
}

// visualLine is one screen row of the editor pane. end is the offset the
// next line continues from (the newline itself is not part of any line).
type visualLine struct {
	cells []textCell
	start int
	end   int
}

func (l visualLine) width() int {
	w := 0
	for _, c := range l.cells {
		w += c.width
	}
	return w
}

// wrapText splits text into screen rows no wider than width, breaking at
// newlines and soft-wrapping long lines.
func wrapText(text string, width int) []visualLine {
	if width <= 0 {
		width = 1
	}
	lines := []visualLine{{}}
	cur := &lines[0]
	column, offset := 0, 0
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := utf8.RuneCountInString(cluster)

		if cluster == "\n" {
			cur.end = offset
			offset += runes
			lines = append(lines, visualLine{start: offset})
			cur = &lines[len(lines)-1]
			column = 0
			continue
		}

		cell := textCell{offset: offset}
		if cluster == "\t" {
			cell.width = textutil.TabAdvance(column, textutil.DefaultTabWidth)
			cell.text = strings.Repeat(" ", cell.width)
		} else {
			cell.text = textutil.SanitizeCluster(cluster)
			cell.width = textutil.DisplayWidth(cell.text)
			if cell.width <= 0 {
				cell.width = 1
			}
		}
		if column > 0 && column+cell.width > width {
			cur.end = offset
			lines = append(lines, visualLine{start: offset})
			cur = &lines[len(lines)-1]
			column = 0
			if cluster == "\t" {
				cell.width = textutil.TabAdvance(0, textutil.DefaultTabWidth)
				cell.text = strings.Repeat(" ", cell.width)
			}
		}
		cur.cells = append(cur.cells, cell)
		column += cell.width
		offset += runes
	}
	cur.end = offset
	return lines
}

// locateCursor returns the row and column of the rune offset cursor. At a
// soft wrap the cursor belongs to the start of the following row.
func locateCursor(lines []visualLine, cursor int) (int, int) {
	for i, line := range lines {
		col := 0
		for _, c := range line.cells {
			if c.offset == cursor {
				return i, col
			}
			col += c.width
		}
		if cursor == line.end && (i+1 == len(lines) || lines[i+1].start != cursor) {
			return i, col
		}
	}
	last := len(lines) - 1
	return last, lines[last].width()
}

// unitStyles maps rune offsets to screen styles using the preview units.
type unitStyles struct {
	units []styling.PreviewUnit
	idx   int
}

func (u *unitStyles) at(offset int) tcell.Style {
	for u.idx < len(u.units) && u.units[u.idx].End <= offset {
		u.idx++
	}
	for u.idx > 0 && u.units[u.idx-1].End > offset {
		u.idx--
	}
	if u.idx >= len(u.units) || u.units[u.idx].Start > offset {
		return tcell.StyleDefault
	}
	unit := u.units[u.idx]
	return documentStyle(styling.Style{
		Foreground: unit.Foreground,
		Background: unit.Background,
		Bold:       unit.Bold,
		Underline:  unit.Underline,
	})
}

// drawEditor draws the document with its live styling, the selection in
// reverse video and the terminal cursor.
func (r *Renderer) drawEditor(state *statepkg.AppState, x0, y0, w, h int) {
	if h <= 0 || w <= 0 {
		r.screen.HideCursor()
		return
	}
	lines := wrapText(state.Text, w)
	cursorRow, cursorCol := locateCursor(lines, state.Cursor)

	if cursorRow < r.editorTop {
		r.editorTop = cursorRow
	}
	if cursorRow >= r.editorTop+h {
		r.editorTop = cursorRow - h + 1
	}
	if maxTop := len(lines) - h; r.editorTop > maxTop {
		r.editorTop = max(maxTop, 0)
	}

	selStart, selEnd, hasSel := state.Selection()
	styles := &unitStyles{units: state.PreviewUnits()}

	for row := 0; row < h; row++ {
		idx := r.editorTop + row
		if idx >= len(lines) {
			break
		}
		x := x0
		for _, cell := range lines[idx].cells {
			if x-x0+cell.width > w {
				break
			}
			style := styles.at(cell.offset)
			if hasSel && cell.offset >= selStart && cell.offset < selEnd {
				style = style.Reverse(true)
			}
			if uniseg.GraphemeClusterCount(cell.text) == 1 {
				runes := []rune(cell.text)
				r.screen.SetContent(x, y0+row, runes[0], runes[1:], style)
			} else {
				// Expanded tabs and labels span several cells.
				r.drawTextLine(x, y0+row, cell.width, cell.text, style)
			}
			x += cell.width
		}
	}

	if cursorCol >= w {
		cursorCol = w - 1
	}
	r.screen.ShowCursor(x0+cursorCol, y0+cursorRow-r.editorTop)
}
