package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors. Document text is drawn in its own
// colors; the theme only covers the chrome around it.
type ColorTheme struct {
	Background      tcell.Color
	Foreground      tcell.Color
	HeaderBg        tcell.Color
	HeaderFg        tcell.Color
	PaneTitleFg     tcell.Color
	MutedFg         tcell.Color
	SelectedRangeBg tcell.Color
	SelectedRangeFg tcell.Color
	FooterBg        tcell.Color
	FooterFg        tcell.Color
	ErrorFg         tcell.Color
	SuccessFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:      tcell.ColorDefault,
		Foreground:      tcell.ColorDefault,
		HeaderBg:        tcell.ColorDefault,
		HeaderFg:        tcell.ColorDefault,
		PaneTitleFg:     tcell.Color33,
		MutedFg:         tcell.ColorLightSlateGray,
		SelectedRangeBg: tcell.Color33,
		SelectedRangeFg: tcell.ColorWhite,
		FooterBg:        tcell.ColorDefault,
		FooterFg:        tcell.ColorDefault,
		ErrorFg:         tcell.ColorRed,
		SuccessFg:       tcell.ColorGreen,
	}
}
