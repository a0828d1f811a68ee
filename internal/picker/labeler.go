package picker

import (
	"fmt"
	"strconv"

	"github.com/tartampluch/go-datepicker/internal/config"
)

// Labeler produces the display strings of date and time options.
type Labeler interface {
	Year(year int) string
	SolarMonth(month int) string
	SolarDay(day int) string
	LunarYear(year int) string
	LunarMonth(month int, leap bool) string
	LunarDay(day int) string
	Hour(hour int) string
	Minute(minute int) string
	Second(second int) string
	AmPm(pm bool) string
}

// NumericLabels renders plain numbers. It is used when no localized catalog
// is supplied.
type NumericLabels struct{}

func (NumericLabels) Year(y int) string       { return strconv.Itoa(y) }
func (NumericLabels) SolarMonth(m int) string { return strconv.Itoa(m) }
func (NumericLabels) SolarDay(d int) string   { return strconv.Itoa(d) }
func (NumericLabels) LunarYear(y int) string  { return strconv.Itoa(y) }
func (NumericLabels) LunarDay(d int) string   { return strconv.Itoa(d) }
func (NumericLabels) Hour(h int) string       { return fmt.Sprintf(config.TimeFormatUnit, h) }
func (NumericLabels) Minute(m int) string     { return fmt.Sprintf(config.TimeFormatUnit, m) }
func (NumericLabels) Second(s int) string     { return fmt.Sprintf(config.TimeFormatUnit, s) }

func (NumericLabels) LunarMonth(m int, leap bool) string {
	if leap {
		return "L" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

func (NumericLabels) AmPm(pm bool) string {
	if pm {
		return "PM"
	}
	return "AM"
}
