package picker

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datepicker/internal/calendar"
)

func date(y, m, d int) calendar.Date { return calendar.Date{Year: y, Month: m, Day: d} }

func newTestDatePicker(selected calendar.Date, lunar bool) *DatePicker {
	return NewDatePicker(DateOptions{
		Start:    date(2000, 1, 1),
		End:      date(2030, 12, 31),
		Selected: selected,
		Lunar:    lunar,
		Theme:    flatTheme(60),
		Measurer: RatioMeasurer(1),
		Animator: NewManualAnimator(),
	})
}

func selectedText(p *DatePicker, col int) string {
	opt, _ := p.Column(col).Selected()
	return opt.Text
}

func TestNewDatePicker_Defaults(t *testing.T) {
	p := NewDatePicker(DateOptions{})
	start, end := p.Range()
	assert.Equal(t, date(1970, 1, 1), start)
	assert.Equal(t, date(2100, 12, 31), end)
	assert.Equal(t, start, p.SelectedDate(), "no selection starts at the range start")
	require.Len(t, p.Columns(), 3)
	assert.False(t, p.Column(ColumnYear).Loop())
	assert.True(t, p.Column(ColumnMonth).Loop())
	assert.True(t, p.Column(ColumnDay).Loop())
}

func TestNewDatePicker_InvertedRangeFallsBack(t *testing.T) {
	p := NewDatePicker(DateOptions{Start: date(2030, 1, 1), End: date(2000, 1, 1)})
	start, end := p.Range()
	assert.Equal(t, date(1970, 1, 1), start)
	assert.Equal(t, date(2100, 12, 31), end)
}

func TestDatePicker_SolarColumns(t *testing.T) {
	p := newTestDatePicker(date(2024, 2, 29), false)
	assert.Equal(t, 31, p.Column(ColumnYear).Count())
	assert.Equal(t, 24, p.Column(ColumnYear).CurrentIndex())
	assert.Equal(t, 12, p.Column(ColumnMonth).Count())
	assert.Equal(t, 1, p.Column(ColumnMonth).CurrentIndex())
	assert.Equal(t, 29, p.Column(ColumnDay).Count())
	assert.Equal(t, 28, p.Column(ColumnDay).CurrentIndex())
	assert.Equal(t, "29", selectedText(p, ColumnDay))
}

func TestDatePicker_ColumnsRespectRange(t *testing.T) {
	p := NewDatePicker(DateOptions{
		Start:    date(2020, 3, 15),
		End:      date(2021, 10, 10),
		Selected: date(2020, 3, 20),
	})
	months := p.Column(ColumnMonth).Options()
	require.Len(t, months, 10)
	assert.Equal(t, "3", months[0].Text)
	days := p.Column(ColumnDay).Options()
	require.Len(t, days, 17)
	assert.Equal(t, "15", days[0].Text)
	assert.Equal(t, 5, p.Column(ColumnDay).CurrentIndex())

	p.SetSelectedDate(date(2021, 10, 1))
	assert.Len(t, p.Column(ColumnMonth).Options(), 10)
	assert.Len(t, p.Column(ColumnDay).Options(), 10)
}

// TestCascade_LeapDayClampsInCommonYears moves the year column from Feb 29
// to every year of the lunar table.
func TestCascade_LeapDayClampsInCommonYears(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		p := NewDatePicker(DateOptions{
			Start:    date(1900, 1, 1),
			End:      date(2100, 12, 31),
			Selected: date(2024, 2, 29),
		})
		p.applyChange(IndexChange{Tag: ColumnYear, Index: year - 1900, Notify: true})

		want := date(year, 2, 29)
		if !calendar.IsLeapYear(year) {
			want = date(year, 2, 28)
		}
		assert.Equalf(t, want, p.SelectedDate(), "year %d", year)
		assert.Equal(t, want.Day, p.Column(ColumnDay).Count())
	}
}

func TestCascade_RollOver(t *testing.T) {
	tests := []struct {
		name  string
		start calendar.Date
		col   int
		key   KeyCode
		want  calendar.Date
	}{
		{"DayPastMonthEnd", date(2024, 1, 31), ColumnDay, KeyDpadDown, date(2024, 2, 1)},
		{"DayBeforeMonthStart", date(2024, 3, 1), ColumnDay, KeyDpadUp, date(2024, 2, 29)},
		{"DayPastYearEnd", date(2024, 12, 31), ColumnDay, KeyDpadDown, date(2025, 1, 1)},
		{"DecemberToJanuary", date(2024, 12, 15), ColumnMonth, KeyDpadDown, date(2025, 1, 15)},
		{"JanuaryToDecember", date(2024, 1, 15), ColumnMonth, KeyDpadUp, date(2023, 12, 15)},
		{"MonthClampsDay", date(2024, 1, 31), ColumnMonth, KeyDpadDown, date(2024, 2, 29)},
		{"PlainDay", date(2024, 5, 10), ColumnDay, KeyDpadDown, date(2024, 5, 11)},
		{"PlainYear", date(2024, 5, 10), ColumnYear, KeyDpadUp, date(2023, 5, 10)},
		{"RollPastRangeClamps", date(2030, 12, 31), ColumnDay, KeyDpadDown, date(2030, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestDatePicker(tt.start, false)
			p.Key(tt.col, KeyEvent{Code: tt.key})
			assert.Equal(t, tt.want, p.SelectedDate())
		})
	}
}

func TestSetSelectedDate_ClampsToNearerBound(t *testing.T) {
	p := newTestDatePicker(date(2024, 6, 1), false)

	res := p.SetSelectedDate(date(1990, 5, 5))
	assert.True(t, res.Clamped)
	assert.Equal(t, date(2000, 1, 1), p.SelectedDate())

	res = p.SetSelectedDate(date(2040, 5, 5))
	assert.True(t, res.Clamped)
	assert.Equal(t, date(2030, 12, 31), p.SelectedDate())

	res = p.SetSelectedDate(date(2023, 2, 29))
	assert.True(t, res.Clamped)
	assert.Equal(t, date(2023, 2, 28), p.SelectedDate())

	res = p.SetSelectedDate(date(2023, 7, 4))
	assert.False(t, res.Clamped)
}

func TestSetRange_ReclampsSelection(t *testing.T) {
	p := newTestDatePicker(date(2024, 6, 1), false)
	p.SetRange(date(2025, 1, 1), date(2026, 1, 1))
	assert.Equal(t, date(2025, 1, 1), p.SelectedDate())
	assert.Equal(t, 2, p.Column(ColumnYear).Count())
}

// TestSetLunar_RoundTrip toggles the display of the 2024 leap day.
func TestSetLunar_RoundTrip(t *testing.T) {
	p := newTestDatePicker(date(2024, 2, 29), false)

	p.SetLunar(true)
	assert.True(t, p.IsLunar())
	assert.Equal(t, calendar.LunarDate{Year: 2024, Month: 1, Day: 20}, p.LunarDate())
	assert.Equal(t, "2024", selectedText(p, ColumnYear))
	assert.Equal(t, "1", selectedText(p, ColumnMonth))
	assert.Equal(t, "20", selectedText(p, ColumnDay))
	assert.Equal(t, 29, p.Column(ColumnDay).Count(), "lunar 2024 month 1 has 29 days")

	p.SetLunar(false)
	assert.Equal(t, date(2024, 2, 29), p.SelectedDate())
	assert.Equal(t, "29", selectedText(p, ColumnDay))
}

// TestLunar_LeapMonthColumn uses lunar 2020, whose leap month follows the 4th.
func TestLunar_LeapMonthColumn(t *testing.T) {
	leap, ok := calendar.LunarLeapMonth(2020)
	require.True(t, ok)
	require.Equal(t, 4, leap)

	p := newTestDatePicker(date(2020, 1, 1), true)
	p.SetLunarDate(calendar.LunarDate{Year: 2020, Month: 4, Day: 15})

	months := p.Column(ColumnMonth).Options()
	require.Len(t, months, 13)
	assert.Equal(t, "4", months[3].Text)
	assert.Equal(t, "L4", months[4].Text)
	assert.Equal(t, "5", months[5].Text)

	p.Key(ColumnMonth, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, calendar.LunarDate{Year: 2020, Month: 4, IsLeapMonth: true, Day: 15}, p.LunarDate())
	assert.Equal(t, 4, p.Column(ColumnMonth).CurrentIndex())

	p.Key(ColumnMonth, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, calendar.LunarDate{Year: 2020, Month: 5, Day: 15}, p.LunarDate())
}

func TestLunar_RollOver(t *testing.T) {
	t.Run("DayIntoLeapMonth", func(t *testing.T) {
		p := newTestDatePicker(date(2020, 1, 1), true)
		p.SetLunarDate(calendar.LunarDate{Year: 2020, Month: 4, Day: 30})
		p.Key(ColumnDay, KeyEvent{Code: KeyDpadDown})
		assert.Equal(t, calendar.LunarDate{Year: 2020, Month: 4, IsLeapMonth: true, Day: 1}, p.LunarDate())
	})
	t.Run("LastMonthIntoNextYear", func(t *testing.T) {
		p := newTestDatePicker(date(2020, 1, 1), true)
		p.SetLunarDate(calendar.LunarDate{Year: 2023, Month: 12, Day: 10})
		p.Key(ColumnMonth, KeyEvent{Code: KeyDpadDown})
		assert.Equal(t, calendar.LunarDate{Year: 2024, Month: 1, Day: 10}, p.LunarDate())
	})
	t.Run("YearDropsMissingLeapMonth", func(t *testing.T) {
		p := newTestDatePicker(date(2020, 1, 1), true)
		p.SetLunarDate(calendar.LunarDate{Year: 2020, Month: 4, IsLeapMonth: true, Day: 29})
		p.Key(ColumnYear, KeyEvent{Code: KeyDpadDown})
		got := p.LunarDate()
		assert.Equal(t, 2021, got.Year)
		assert.Equal(t, 4, got.Month)
		assert.False(t, got.IsLeapMonth)
	})
}

func TestDatePicker_Events(t *testing.T) {
	p := newTestDatePicker(date(2024, 2, 28), false)
	var events []ChangeEvent
	p.OnChange(func(e ChangeEvent) { events = append(events, e) })

	p.Key(ColumnDay, KeyEvent{Code: KeyDpadDown})
	require.Len(t, events, 1)
	assert.Equal(t, StatusSelected, events[0].Status)
	assert.Equal(t, date(2024, 2, 29), events[0].Date.Solar)
	assert.Nil(t, events[0].Date.Lunar)
	assert.Equal(t, []string{"2024", "2", "29"}, events[0].Texts)

	data, err := events[0].JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2024,"month":1,"day":29,"status":0}`, string(data))
}

func TestDatePicker_DragCommitsOnSettle(t *testing.T) {
	anim := NewManualAnimator()
	p := NewDatePicker(DateOptions{
		Start:    date(2000, 1, 1),
		End:      date(2030, 12, 31),
		Selected: date(2024, 5, 10),
		Theme:    flatTheme(60),
		Measurer: RatioMeasurer(1),
		Animator: anim,
	})
	var statuses []Status
	p.OnChange(func(e ChangeEvent) { statuses = append(statuses, e.Status) })

	p.DragStart(ColumnDay, 0)
	p.DragUpdate(ColumnDay, -40)
	p.DragUpdate(ColumnDay, -80)
	p.DragEnd(ColumnDay, 0)
	assert.True(t, p.Animating())
	anim.Flush(100)

	assert.False(t, p.Animating())
	assert.Equal(t, date(2024, 5, 11), p.SelectedDate())
	assert.Equal(t, []Status{StatusScrolling, StatusSelected}, statuses)
}

// lunarMonthPos numbers the lunar months of 2018..2022 in calendar order,
// leap months included.
func lunarMonthPos(t *testing.T, l calendar.LunarDate) int {
	t.Helper()
	pos := 0
	for year := 2018; year <= 2022; year++ {
		for _, m := range calendar.LunarMonths(year) {
			if year == l.Year && m.Month == l.Month && m.IsLeap == l.IsLeapMonth {
				return pos
			}
			pos++
		}
	}
	require.FailNowf(t, "lunar month out of test window", "%+v", l)
	return 0
}

// TestDatePicker_MotionCrossesBoundariesOneStepAtATime tosses and clicks
// columns across month, year and leap-month boundaries. Every reported value
// must be exactly one unit away from the one before it.
func TestDatePicker_MotionCrossesBoundariesOneStepAtATime(t *testing.T) {
	tests := []struct {
		name     string
		start    calendar.Date
		lunar    bool
		col      int
		gesture  func(p *DatePicker)
		minSteps int
		via      calendar.Date // a date the motion must pass through
	}{
		{
			name:  "SolarDayTossBackwards",
			start: date(2024, 3, 3),
			col:   ColumnDay,
			gesture: func(p *DatePicker) {
				p.DragStart(ColumnDay, 0)
				p.DragEnd(ColumnDay, 6000)
			},
			minSteps: 60,
			via:      date(2024, 1, 30),
		},
		{
			name:  "SolarDayTossForwards",
			start: date(2024, 2, 20),
			col:   ColumnDay,
			gesture: func(p *DatePicker) {
				p.DragStart(ColumnDay, 0)
				p.DragEnd(ColumnDay, -3000)
			},
			minSteps: 20,
			via:      date(2024, 2, 29),
		},
		{
			name:  "SolarDayClickAcrossMonth",
			start: date(2024, 3, 2),
			col:   ColumnDay,
			gesture: func(p *DatePicker) {
				p.Click(ColumnDay, 0)
			},
			minSteps: 3,
			via:      date(2024, 2, 29),
		},
		{
			// Lunar 2020 has a leap fourth month; 2021 has none.
			name:  "LunarMonthTossAcrossLeapMonth",
			start: calendar.LunarToSolar(calendar.LunarDate{Year: 2021, Month: 3, Day: 15}),
			lunar: true,
			col:   ColumnMonth,
			gesture: func(p *DatePicker) {
				p.DragStart(ColumnMonth, 0)
				p.DragEnd(ColumnMonth, 2000)
			},
			minSteps: 12,
			via:      calendar.LunarToSolar(calendar.LunarDate{Year: 2020, Month: 4, IsLeapMonth: true, Day: 15}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim := NewManualAnimator()
			p := NewDatePicker(DateOptions{
				Start:    date(2000, 1, 1),
				End:      date(2030, 12, 31),
				Selected: tt.start,
				Lunar:    tt.lunar,
				Theme:    DefaultTheme(),
				Animator: anim,
			})
			var events []ChangeEvent
			p.OnChange(func(e ChangeEvent) { events = append(events, e) })

			tt.gesture(p)
			anim.Flush(5000)
			require.False(t, p.Animating())
			require.NotEmpty(t, events)

			last := events[len(events)-1]
			assert.Equal(t, StatusSelected, last.Status)
			assert.Equal(t, p.SelectedDate(), last.Date.Solar)

			steps := events[:len(events)-1]
			assert.GreaterOrEqual(t, len(steps), tt.minSteps)
			prev := tt.start
			seen := false
			for i, e := range steps {
				assert.Equalf(t, StatusScrolling, e.Status, "event %d", i)
				got := e.Date.Solar
				if tt.lunar {
					require.NotNil(t, e.Date.Lunar)
					assert.Equalf(t, 1, absInt(lunarMonthPos(t, *e.Date.Lunar)-lunarMonthPos(t, calendar.SolarToLunar(prev))),
						"event %d: %v after %v", i, *e.Date.Lunar, calendar.SolarToLunar(prev))
				} else {
					assert.Truef(t, got == prev.AddDays(1) || got == prev.AddDays(-1),
						"event %d: %v after %v", i, got, prev)
				}
				seen = seen || got == tt.via
				prev = got
			}
			assert.True(t, seen, "motion never passed %v", tt.via)

			// At rest every column is row aligned on a valid date.
			assert.True(t, p.SelectedDate().Valid())
			for _, c := range p.Columns() {
				assert.Zero(t, c.ScrollDelta())
				assert.Equal(t, StateIdle, c.State())
			}
			if !tt.lunar {
				assert.Equal(t, strconv.Itoa(p.SelectedDate().Day), selectedText(p, ColumnDay))
			}
		})
	}
}

func TestDatePicker_SaveRestoreState(t *testing.T) {
	p := newTestDatePicker(date(2020, 5, 23), true)
	data, err := p.SaveState()
	require.NoError(t, err)

	var st DateState
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, DateState{Selected: date(2020, 5, 23), Start: date(2000, 1, 1), End: date(2030, 12, 31), Lunar: true}, st)

	q := NewDatePicker(DateOptions{})
	require.NoError(t, q.RestoreState(data))
	assert.Equal(t, date(2020, 5, 23), q.SelectedDate())
	assert.True(t, q.IsLunar())
	assert.Equal(t, "L4", selectedText(q, ColumnMonth))

	assert.Error(t, q.RestoreState([]byte("{")))
	assert.Equal(t, date(2020, 5, 23), q.SelectedDate(), "a failed restore keeps the state")
}

func TestDatePicker_LunarEventCarriesLunarDate(t *testing.T) {
	p := newTestDatePicker(date(2020, 5, 23), true)
	e := p.Event(StatusSelected)
	require.NotNil(t, e.Date.Lunar)
	data, err := e.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2020,"month":4,"day":23,"status":0,
		"lunar":{"year":2020,"month":4,"isLeapMonth":true,"day":1}}`, string(data))
}
