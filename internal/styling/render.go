package styling

import (
	"iter"
	"strconv"
	"strings"
)

// Segment is a maximal run of text sharing one effective style.
type Segment struct {
	Start   int // rune offset
	End     int
	Text    string
	Style   Style
	Default bool // true for gaps not covered by any range
}

// Segments walks the text left to right, yielding range segments under their
// own style and the gaps between them under the default style. With no
// ranges the whole text is one segment carrying the default colors and the
// current bold/underline flags.
//
// Every call to the returned sequence starts over from the beginning.
func Segments(snap Snapshot) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		runes := []rune(snap.Text)
		n := len(runes)
		if n == 0 {
			return
		}

		if len(snap.Ranges) == 0 {
			style := snap.Default
			style.Bold = snap.Current.Bold
			style.Underline = snap.Current.Underline
			yield(Segment{Start: 0, End: n, Text: snap.Text, Style: style, Default: true})
			return
		}

		gap := Style{Foreground: snap.Default.Foreground, Background: snap.Default.Background}
		emit := func(start, end int, style Style, isDefault bool) bool {
			if start >= end {
				return true
			}
			return yield(Segment{
				Start:   start,
				End:     end,
				Text:    string(runes[start:end]),
				Style:   style,
				Default: isDefault,
			})
		}

		last := 0
		for _, r := range snap.Ranges {
			start := clamp(r.Start, last, n)
			end := clamp(r.End, start, n)
			if !emit(last, start, gap, true) {
				return
			}
			if !emit(start, end, r.Style, false) {
				return
			}
			last = end
		}
		emit(last, n, gap, true)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EncodeOptions tunes the ANSI encoder.
type EncodeOptions struct {
	// Language is the fence info string; empty means "ansi".
	Language string
	// Coalesce merges adjacent segments whose styles match.
	Coalesce bool
}

const (
	fence    = "```"
	esc      = "\x1b["
	sgrReset = "\x1b[0m"
)

// EncodeANSI renders the snapshot as a fenced block of SGR-escaped segments.
func EncodeANSI(snap Snapshot, opts EncodeOptions) string {
	lang := opts.Language
	if lang == "" {
		lang = "ansi"
	}
	if snap.Text == "" {
		return fence + lang + "\n" + fence
	}

	var b strings.Builder
	b.Grow(len(snap.Text) + 64)
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteByte('\n')

	var pending *Segment
	for seg := range Segments(snap) {
		if opts.Coalesce && pending != nil && pending.Style == seg.Style {
			pending.Text += seg.Text
			pending.End = seg.End
			continue
		}
		if pending != nil {
			writeSegment(&b, *pending)
		}
		s := seg
		pending = &s
	}
	if pending != nil {
		writeSegment(&b, *pending)
	}

	b.WriteByte('\n')
	b.WriteString(fence)
	return b.String()
}

func writeSegment(b *strings.Builder, seg Segment) {
	writeSGR(b, seg.Style)
	b.WriteString(seg.Text)
	b.WriteString(sgrReset)
}

func writeSGR(b *strings.Builder, style Style) {
	b.WriteString(esc)
	if style.Bold {
		b.WriteString("1;")
	}
	if style.Underline {
		b.WriteString("4;")
	}
	b.WriteString("38;5;")
	b.WriteString(strconv.Itoa(int(Quantize(style.Foreground))))
	b.WriteString(";48;5;")
	b.WriteString(strconv.Itoa(int(Quantize(style.Background))))
	b.WriteByte('m')
}

// PreviewUnit is one displayable run with raw colors.
type PreviewUnit struct {
	Start      int
	End        int
	Text       string
	Foreground Color
	Background Color
	Bold       bool
	Underline  bool
}

// Preview renders the snapshot as display units for on-screen preview.
func Preview(snap Snapshot) []PreviewUnit {
	var units []PreviewUnit
	for seg := range Segments(snap) {
		units = append(units, PreviewUnit{
			Start:      seg.Start,
			End:        seg.End,
			Text:       seg.Text,
			Foreground: seg.Style.Foreground,
			Background: seg.Style.Background,
			Bold:       seg.Style.Bold,
			Underline:  seg.Style.Underline,
		})
	}
	return units
}
