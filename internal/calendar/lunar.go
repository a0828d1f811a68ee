package calendar

import "fmt"

func yearInfo(year int) uint32 {
	return lunarInfo[year-MinYear]
}

func inTable(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// LunarLeapMonth returns the leap month of a lunar year.
// The boolean is false, and the month 0, when the year has no leap month or
// lies outside the table.
func LunarLeapMonth(year int) (int, bool) {
	if !inTable(year) {
		return 0, false
	}
	m := int(yearInfo(year) & leapMonthMask)
	return m, m != 0
}

// leapMonthDays returns the length of the year's leap month, 0 if none.
func leapMonthDays(year int) int {
	if _, ok := LunarLeapMonth(year); !ok {
		return 0
	}
	if yearInfo(year)&leapMonthBigFlag != 0 {
		return bigMonthDays
	}
	return smallMonthDays
}

// regularMonthDays returns the length of a non-leap month.
func regularMonthDays(year, month int) int {
	if yearInfo(year)&(monthBitBase>>uint(month)) != 0 {
		return bigMonthDays
	}
	return smallMonthDays
}

// LunarYearDays returns the number of days of a lunar year, leap month included.
// It returns 0 outside the table.
func LunarYearDays(year int) int {
	if !inTable(year) {
		return 0
	}
	sum := baseYearDays
	info := yearInfo(year)
	for bit := uint32(firstMonthBit); bit > lastMonthBit; bit >>= 1 {
		if info&bit != 0 {
			sum++
		}
	}
	return sum + leapMonthDays(year)
}

// LunarMaxDay returns the number of days of a lunar month (29 or 30).
// A leap request for a month that is not the year's leap month yields 0,
// as does any year or month outside the supported range.
func LunarMaxDay(year, month int, isLeap bool) int {
	if !inTable(year) || month < 1 || month > 12 {
		return 0
	}
	if isLeap {
		if leap, _ := LunarLeapMonth(year); leap != month {
			return 0
		}
		return leapMonthDays(year)
	}
	return regularMonthDays(year, month)
}

// Valid reports whether the lunar date exists in the table.
func (l LunarDate) Valid() bool {
	return l.Day >= 1 && l.Day <= LunarMaxDay(l.Year, l.Month, l.IsLeapMonth)
}

// String formats the lunar date, marking leap months with an "L" prefix.
func (l LunarDate) String() string {
	leap := ""
	if l.IsLeapMonth {
		leap = "L"
	}
	return fmt.Sprintf("%04d-%s%02d-%02d", l.Year, leap, l.Month, l.Day)
}

// ClampLunar repairs a lunar date so that LunarToSolar can convert it.
// A leap flag on a month that has no leap variant is dropped.
func ClampLunar(l LunarDate) ClampResult[LunarDate] {
	out := l
	switch {
	case out.Year < MinYear:
		out = LunarDate{Year: MinYear, Month: 1, Day: 1}
	case out.Year > MaxYear:
		out = LunarDate{Year: MaxYear, Month: 12, Day: LunarMaxDay(MaxYear, 12, false)}
	}
	if out.Month < 1 {
		out.Month = 1
	} else if out.Month > 12 {
		out.Month = 12
	}
	if out.IsLeapMonth {
		if leap, _ := LunarLeapMonth(out.Year); leap != out.Month {
			out.IsLeapMonth = false
		}
	}
	if maxDay := LunarMaxDay(out.Year, out.Month, out.IsLeapMonth); out.Day > maxDay {
		out.Day = maxDay
	} else if out.Day < 1 {
		out.Day = 1
	}
	return ClampResult[LunarDate]{Value: out, Clamped: out != l}
}

// SolarToLunar converts a Gregorian date. Dates outside [Epoch, Last] are
// clamped first.
func SolarToLunar(d Date) LunarDate {
	d = ClampSolar(d).Value
	offset := daysSinceEpoch(d)

	year := MinYear
	for ; year < MaxYear; year++ {
		days := LunarYearDays(year)
		if offset < days {
			break
		}
		offset -= days
	}

	leap, _ := LunarLeapMonth(year)
	month := 1
	isLeap := false
	for month <= 12 {
		days := regularMonthDays(year, month)
		if isLeap {
			days = leapMonthDays(year)
		}
		if offset < days {
			break
		}
		offset -= days
		if !isLeap && leap == month {
			isLeap = true
		} else {
			isLeap = false
			month++
		}
	}

	return LunarDate{Year: year, Month: month, IsLeapMonth: isLeap, Day: offset + 1}
}

// LunarToSolar converts a lunar date. Invalid input is clamped first.
func LunarToSolar(l LunarDate) Date {
	l = ClampLunar(l).Value

	offset := 0
	for y := MinYear; y < l.Year; y++ {
		offset += LunarYearDays(y)
	}

	leap, _ := LunarLeapMonth(l.Year)
	for m := 1; m < l.Month; m++ {
		offset += regularMonthDays(l.Year, m)
		if leap == m {
			offset += leapMonthDays(l.Year)
		}
	}
	if l.IsLeapMonth {
		// The regular month precedes its leap month.
		offset += regularMonthDays(l.Year, l.Month)
	}
	offset += l.Day - 1

	return Epoch.AddDays(offset)
}

// LunarMonths lists the months of a lunar year in calendar order, with the
// leap month (if any) directly after its regular month.
func LunarMonths(year int) []LunarMonth {
	leap, hasLeap := LunarLeapMonth(year)
	out := make([]LunarMonth, 0, 13)
	for m := 1; m <= 12; m++ {
		out = append(out, LunarMonth{Month: m})
		if hasLeap && m == leap {
			out = append(out, LunarMonth{Month: m, IsLeap: true})
		}
	}
	return out
}

// LunarMonth identifies one month of a lunar year.
type LunarMonth struct {
	Month  int
	IsLeap bool
}
