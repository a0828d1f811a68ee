package picker

import (
	"image/color"

	"github.com/tartampluch/go-datepicker/internal/config"
)

// FontWeight is a CSS-like numeric font weight.
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightMedium FontWeight = 500
	WeightBold   FontWeight = 700
)

// FontStyle selects upright or italic glyphs.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// TextStyle is the visual style of one option row.
type TextStyle struct {
	FontSize   float64
	Color      color.Color
	Weight     FontWeight
	FontFamily string
	FontStyle  FontStyle
}

// Tier classifies a row by its distance from the centre of the window.
type Tier int

const (
	TierSelected Tier = iota
	TierCandidate
	TierDisappear
)

// Theme supplies the styles and metrics a column needs to lay out its rows.
type Theme struct {
	Selected  TextStyle
	Candidate TextStyle
	Disappear TextStyle
	Disabled  TextStyle

	// DividerSpacing is the height of the selected row.
	DividerSpacing float64
	// OptionHeight is the height of every other row.
	OptionHeight float64
	// GradientHeight is the fade area painted above and below the selection.
	GradientHeight float64
	// ShowCount is the row pool size; it must be odd.
	ShowCount int
}

// DefaultTheme returns the portrait theme.
func DefaultTheme() *Theme {
	return &Theme{
		Selected: TextStyle{
			FontSize: config.DefaultSelectedFontSize,
			Color:    color.NRGBA{R: 0x00, G: 0x7d, B: 0xff, A: 0xff},
			Weight:   WeightMedium,
		},
		Candidate: TextStyle{
			FontSize: config.DefaultCandidateFontSize,
			Color:    color.NRGBA{R: 0x18, G: 0x24, B: 0x31, A: 0xe6},
			Weight:   WeightNormal,
		},
		Disappear: TextStyle{
			FontSize: config.DefaultDisappearFontSize,
			Color:    color.NRGBA{R: 0x18, G: 0x24, B: 0x31, A: 0x99},
			Weight:   WeightNormal,
		},
		Disabled: TextStyle{
			FontSize: config.DefaultCandidateFontSize,
			Color:    color.NRGBA{R: 0x18, G: 0x24, B: 0x31, A: 0x66},
			Weight:   WeightNormal,
		},
		DividerSpacing: config.DefaultDividerSpacing,
		OptionHeight:   config.DefaultOptionHeight,
		GradientHeight: config.DefaultGradientHeight,
		ShowCount:      config.DefaultShowCount,
	}
}

// LandscapeTheme returns the default theme with the reduced landscape pool.
func LandscapeTheme() *Theme {
	t := DefaultTheme()
	t.ShowCount = config.LandscapeShowCount
	return t
}

// OptionStyle returns the style of a selected or unselected option.
// Disabled wins over selection.
func (t *Theme) OptionStyle(selected, disabled bool) TextStyle {
	switch {
	case disabled:
		return t.Disabled
	case selected:
		return t.Selected
	default:
		return t.Candidate
	}
}

// TierStyle returns the style of a tier, or the disabled style.
func (t *Theme) TierStyle(tier Tier, disabled bool) TextStyle {
	if disabled {
		return t.Disabled
	}
	switch tier {
	case TierSelected:
		return t.Selected
	case TierCandidate:
		return t.Candidate
	default:
		return t.Disappear
	}
}

// valid reports whether the theme can drive a column.
func (t *Theme) valid() bool {
	return t != nil && t.ShowCount >= 3 && t.ShowCount%2 == 1
}

// Measurer reports the line height of text in a given style.
type Measurer interface {
	FontHeight(style TextStyle) float64
}

// RatioMeasurer derives the line height from the font size alone.
type RatioMeasurer float64

// FontHeight implements Measurer.
func (r RatioMeasurer) FontHeight(style TextStyle) float64 {
	return style.FontSize * float64(r)
}

// DefaultMeasurer is used when a column is created without one.
var DefaultMeasurer Measurer = RatioMeasurer(config.DefaultLineHeightRatio)
