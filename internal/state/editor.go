package state

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// normalizeText brings incoming text to NFC with "\n" line endings so that
// rune offsets stay stable across edits of the same visible text.
func normalizeText(text string) string {
	if strings.Contains(text, "\r") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return norm.NFC.String(text)
}

// graphemeBoundaries returns the rune offsets at which grapheme clusters
// start, followed by the total rune count.
func graphemeBoundaries(text string) []int {
	bounds := make([]int, 0, len(text)+1)
	offset := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		bounds = append(bounds, offset)
		offset += len(g.Runes())
	}
	return append(bounds, offset)
}

func prevGraphemeBoundary(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	prev := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= pos {
			break
		}
		prev = b
	}
	return prev
}

func nextGraphemeBoundary(text string, pos int) int {
	bounds := graphemeBoundaries(text)
	for _, b := range bounds {
		if b > pos {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// lineBounds returns the rune offsets of the start and end (exclusive of the
// newline) of the line containing pos.
func lineBounds(runes []rune, pos int) (int, int) {
	start := pos
	for start > 0 && runes[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(runes) && runes[end] != '\n' {
		end++
	}
	return start, end
}

// verticalMove moves pos one line up (delta < 0) or down, aiming for column.
func verticalMove(runes []rune, pos, column, delta int) int {
	start, end := lineBounds(runes, pos)
	var lineStart, lineEnd int
	if delta < 0 {
		if start == 0 {
			return 0
		}
		lineStart, lineEnd = lineBounds(runes, start-1)
	} else {
		if end >= len(runes) {
			return len(runes)
		}
		lineStart, lineEnd = lineBounds(runes, end+1)
	}
	target := lineStart + column
	if target > lineEnd {
		target = lineEnd
	}
	return target
}

func spliceRunes(runes []rune, start, end int, insert string) string {
	var b strings.Builder
	b.Grow(len(runes) + len(insert))
	b.WriteString(string(runes[:start]))
	b.WriteString(insert)
	b.WriteString(string(runes[end:]))
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
