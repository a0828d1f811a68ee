// Package calendar converts between Gregorian (solar) dates and the Chinese
// lunisolar calendar for the years covered by the lunar table (1900-2100).
//
// Every function here is pure. Invalid input is never rejected: it is clamped
// to the nearest valid value and the caller can inspect ClampResult to learn
// whether that happened.
package calendar

import (
	"fmt"
	"time"
)

// Supported range of the lunar table.
const (
	MinYear = 1900
	MaxYear = 2100
)

const secondsPerDay = 24 * 60 * 60

// solarMonthDays holds the length of each month in a common year.
var solarMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a Gregorian calendar date (PickerDate). Month is 1-based.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// LunarDate is a date of the lunisolar calendar.
// When IsLeapMonth is set, Month names the month the leap month follows.
type LunarDate struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	IsLeapMonth bool `json:"isLeapMonth"`
	Day         int  `json:"day"`
}

// ClampResult carries a value that may have been silently adjusted.
type ClampResult[T any] struct {
	Value   T
	Clamped bool
}

// Epoch is the first solar date the lunar table can express (lunar 1900-01-01).
var Epoch = Date{Year: MinYear, Month: 1, Day: 31}

// Last is the last solar date accepted by the conversions.
var Last = Date{Year: MaxYear, Month: 12, Day: 31}

// -----------------------------------------------------------------------------
// Solar helpers
// -----------------------------------------------------------------------------

// IsLeapYear reports whether the Gregorian year has a February 29.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// SolarMaxDay returns the number of days of a Gregorian month.
// It returns 0 for a month outside 1..12.
func SolarMaxDay(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return solarMonthDays[1] + 1
	}
	return solarMonthDays[month-1]
}

// Valid reports whether the date exists in the Gregorian calendar.
func (d Date) Valid() bool {
	return d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= SolarMaxDay(d.Year, d.Month)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// FromTime extracts the calendar date of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// AddDays moves the date by n days, normalising across months and years.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

// daysSinceEpoch counts days from Epoch; d must be a valid date.
func daysSinceEpoch(d Date) int {
	return int((d.Time(time.UTC).Unix() - Epoch.Time(time.UTC).Unix()) / secondsPerDay)
}

// ClampSolar repairs an invalid solar date and restricts it to [Epoch, Last].
func ClampSolar(d Date) ClampResult[Date] {
	out := d
	if out.Month < 1 {
		out.Month = 1
	} else if out.Month > 12 {
		out.Month = 12
	}
	if maxDay := SolarMaxDay(out.Year, out.Month); out.Day > maxDay {
		out.Day = maxDay
	} else if out.Day < 1 {
		out.Day = 1
	}
	if out.Before(Epoch) {
		out = Epoch
	} else if out.After(Last) {
		out = Last
	}
	return ClampResult[Date]{Value: out, Clamped: out != d}
}

// ClampRange restricts d to [start, end], snapping to the nearer bound.
// An inverted range is treated as if its bounds were swapped.
func ClampRange(d, start, end Date) ClampResult[Date] {
	if end.Before(start) {
		start, end = end, start
	}
	switch {
	case d.Before(start):
		return ClampResult[Date]{Value: start, Clamped: true}
	case d.After(end):
		return ClampResult[Date]{Value: end, Clamped: true}
	default:
		return ClampResult[Date]{Value: d}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
