package ui

import (
	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-datepicker/internal/picker"
)

// measureSample covers ascenders and descenders.
const measureSample = "Mg"

// TextMeasurer reports line heights with the Fyne text engine.
type TextMeasurer struct{}

// FontHeight implements picker.Measurer.
func (TextMeasurer) FontHeight(style picker.TextStyle) float64 {
	return float64(fyne.MeasureText(measureSample, float32(style.FontSize), fyneTextStyle(style)).Height)
}

// fyneTextStyle maps a picker style onto the flags Fyne understands. Fyne has
// no intermediate weights, so medium and above render bold.
func fyneTextStyle(style picker.TextStyle) fyne.TextStyle {
	return fyne.TextStyle{
		Bold:   style.Weight >= picker.WeightMedium,
		Italic: style.FontStyle == picker.FontStyleItalic,
	}
}
