package render

type layoutMetrics struct {
	editorTop      int
	editorHeight   int
	rangesTitleRow int // -1 when the ranges pane is hidden
	rangesTop      int
	rangesHeight   int
	statusRow      int // -1 when hidden
	footerRow      int // -1 when hidden
}

const (
	minRangesRows = 1
	maxRangesRows = 8
	minEditorRows = 3
)

// computeLayout splits h rows into header, editor, ranges list, status and
// footer. Smaller terminals lose the lower panes first.
func computeLayout(h, rangeCount int) layoutMetrics {
	m := layoutMetrics{editorTop: 1, rangesTitleRow: -1, statusRow: -1, footerRow: -1}
	if h <= 1 {
		return m
	}

	bottom := h
	if h >= 3 {
		m.footerRow = h - 1
		bottom = m.footerRow
	}
	if h >= 4 {
		m.statusRow = h - 2
		bottom = m.statusRow
	}

	rows := rangeCount
	if rows < minRangesRows {
		rows = minRangesRows
	}
	if rows > maxRangesRows {
		rows = maxRangesRows
	}
	if bottom-m.editorTop-(rows+1) >= minEditorRows {
		m.rangesHeight = rows
		m.rangesTop = bottom - rows
		m.rangesTitleRow = m.rangesTop - 1
		bottom = m.rangesTitleRow
	}

	m.editorHeight = bottom - m.editorTop
	if m.editorHeight < 0 {
		m.editorHeight = 0
	}
	return m
}
