package styling

// Style is the set of attributes applied to a run of text.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Underline  bool
}

// StylePatch is a partial Style. Nil fields are unspecified and leave the
// base value untouched when applied.
type StylePatch struct {
	Foreground *Color
	Background *Color
	Bold       *bool
	Underline  *bool
}

// Apply overlays the specified fields of p onto base.
func (p StylePatch) Apply(base Style) Style {
	out := base
	if p.Foreground != nil {
		out.Foreground = *p.Foreground
	}
	if p.Background != nil {
		out.Background = *p.Background
	}
	if p.Bold != nil {
		out.Bold = *p.Bold
	}
	if p.Underline != nil {
		out.Underline = *p.Underline
	}
	return out
}

// FullPatch specifies every field of s.
func FullPatch(s Style) StylePatch {
	return StylePatch{
		Foreground: &s.Foreground,
		Background: &s.Background,
		Bold:       &s.Bold,
		Underline:  &s.Underline,
	}
}

// Snapshot is the read-only input to rendering: the text, its resolved
// ranges and the two style values the renderer consults.
type Snapshot struct {
	Text    string
	Ranges  RangeSet
	Default Style
	Current Style
}
