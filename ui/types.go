// Package ui draws the window host's heads-up display and control panel
// with raylib and raygui.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillHot    rl.Color

	// HUD text
	TitleColor  rl.Color
	StatusColor rl.Color
	PausedColor rl.Color
	HintColor   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
	HUDFontSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 16, B: 24, A: 210},
		PanelBorder:    rl.Color{R: 52, G: 64, B: 86, A: 255},
		SectionHeader:  rl.Color{R: 250, G: 210, B: 110, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 36, G: 40, B: 48, A: 255},
		BarFill:        rl.Color{R: 90, G: 170, B: 220, A: 255},
		BarFillHot:     rl.Color{R: 230, G: 110, B: 90, A: 255},
		TitleColor:     rl.White,
		StatusColor:    rl.Color{R: 120, G: 220, B: 140, A: 255},
		PausedColor:    rl.Yellow,
		HintColor:      rl.Gray,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  20,
		HUDFontSize:    16,
	}
}
