package picker

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-datepicker/internal/calendar"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// Date picker column positions.
const (
	ColumnYear = iota
	ColumnMonth
	ColumnDay
)

// DateOptions configures a DatePicker. Zero values select the defaults.
type DateOptions struct {
	Start    calendar.Date
	End      calendar.Date
	Selected calendar.Date
	Lunar    bool
	// DisableLoop stops the month and day columns from wrapping.
	DisableLoop bool
	Disabled    bool

	Theme    *Theme
	Measurer Measurer
	Labels   Labeler
	Animator Animator
	Logger   *slog.Logger
}

// DefaultRange returns the range used when none (or an inverted one) is given.
func DefaultRange() (calendar.Date, calendar.Date) {
	return calendar.Date{Year: config.DefaultStartYear, Month: config.DefaultStartMonth, Day: config.DefaultStartDay},
		calendar.Date{Year: config.DefaultEndYear, Month: config.DefaultEndMonth, Day: config.DefaultEndDay}
}

// DatePicker combines year, month and day columns into a date.
// The selection is always held as a solar date; the lunar view is derived.
type DatePicker struct {
	*orchestrator

	start    calendar.Date
	end      calendar.Date
	selected calendar.Date
	lunar    bool
	labels   Labeler
	log      *slog.Logger

	// Values behind each column's options, index aligned.
	years  []int
	months []calendar.LunarMonth
	days   []int
}

// NewDatePicker builds a date picker and its three columns.
func NewDatePicker(opts DateOptions) *DatePicker {
	p := &DatePicker{
		lunar:  opts.Lunar,
		labels: opts.Labels,
	}
	if p.labels == nil {
		p.labels = NumericLabels{}
	}
	p.orchestrator = newOrchestrator(p, opts.Animator, opts.Logger)
	p.log = p.orchestrator.log

	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	for tag := ColumnYear; tag <= ColumnDay; tag++ {
		p.columns = append(p.columns, NewColumn(ColumnConfig{
			Tag:      tag,
			Loop:     tag != ColumnYear && !opts.DisableLoop,
			Disabled: opts.Disabled,
			Theme:    theme,
			Measurer: opts.Measurer,
			Logger:   opts.Logger,
		}, nil, 0))
	}

	p.setRange(opts.Start, opts.End)
	selected := opts.Selected
	if selected == (calendar.Date{}) {
		selected = p.start
	}
	p.selected = p.clamp(selected).Value
	p.rebuild()
	return p
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// SelectedDate returns the selected solar date.
func (p *DatePicker) SelectedDate() calendar.Date { return p.selected }

// LunarDate returns the selected date in the lunar calendar.
func (p *DatePicker) LunarDate() calendar.LunarDate { return calendar.SolarToLunar(p.selected) }

// Range returns the selectable bounds.
func (p *DatePicker) Range() (calendar.Date, calendar.Date) { return p.start, p.end }

// IsLunar reports whether the columns show the lunar calendar.
func (p *DatePicker) IsLunar() bool { return p.lunar }

// SetSelectedDate selects d, clamping it into the range. No event is fired.
func (p *DatePicker) SetSelectedDate(d calendar.Date) calendar.ClampResult[calendar.Date] {
	res := p.clamp(d)
	p.selected = res.Value
	p.rebuild()
	return res
}

// SetLunarDate selects a date given in the lunar calendar.
func (p *DatePicker) SetLunarDate(l calendar.LunarDate) calendar.ClampResult[calendar.Date] {
	lc := calendar.ClampLunar(l)
	res := p.SetSelectedDate(calendar.LunarToSolar(lc.Value))
	res.Clamped = res.Clamped || lc.Clamped
	return res
}

// SetRange replaces the bounds and re-clamps the selection.
func (p *DatePicker) SetRange(start, end calendar.Date) {
	p.setRange(start, end)
	p.selected = p.clamp(p.selected).Value
	p.rebuild()
}

// SetLunar switches between solar and lunar display. Every column is rebuilt;
// the selected day does not change.
func (p *DatePicker) SetLunar(lunar bool) {
	if p.lunar == lunar {
		return
	}
	p.lunar = lunar
	p.log.Debug(config.MsgModeToggled, config.LogKeyValue, lunar)
	p.rebuild()
}

// SetLabels swaps the label source, e.g. after a locale change.
func (p *DatePicker) SetLabels(l Labeler) {
	if l == nil {
		l = NumericLabels{}
	}
	p.labels = l
	p.rebuild()
}

// Event builds the change event for the current selection.
func (p *DatePicker) Event(status Status) ChangeEvent {
	v := &DateValue{Solar: p.selected}
	if p.lunar {
		l := p.LunarDate()
		v.Lunar = &l
	}
	return ChangeEvent{Kind: KindDate, Status: status, Date: v, Texts: p.texts()}
}

// -----------------------------------------------------------------------------
// Restore state
// -----------------------------------------------------------------------------

// DateState is the persisted form of a date picker.
type DateState struct {
	Selected calendar.Date `json:"selected"`
	Start    calendar.Date `json:"start"`
	End      calendar.Date `json:"end"`
	Lunar    bool          `json:"lunar"`
}

// SaveState serializes what is needed to rebuild the picker.
func (p *DatePicker) SaveState() ([]byte, error) {
	data, err := json.Marshal(DateState{Selected: p.selected, Start: p.start, End: p.end, Lunar: p.lunar})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSaveState, err)
	}
	return data, nil
}

// RestoreState applies a state produced by SaveState. Values are clamped like
// any other input; only undecodable data is an error.
func (p *DatePicker) RestoreState(data []byte) error {
	var st DateState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRestoreState, err)
	}
	p.lunar = st.Lunar
	p.setRange(st.Start, st.End)
	p.selected = p.clamp(st.Selected).Value
	p.rebuild()
	p.log.Debug(config.MsgStateRestored, config.LogKeyValue, p.selected.String())
	return nil
}

// -----------------------------------------------------------------------------
// Cascade
// -----------------------------------------------------------------------------

func (p *DatePicker) setRange(start, end calendar.Date) {
	if start == (calendar.Date{}) && end == (calendar.Date{}) {
		p.start, p.end = DefaultRange()
		return
	}
	start = calendar.ClampSolar(start).Value
	end = calendar.ClampSolar(end).Value
	if start.After(end) {
		p.log.Debug(config.MsgRangeReset, config.LogKeyOld, start.String(), config.LogKeyNew, end.String())
		start, end = DefaultRange()
	}
	p.start, p.end = start, end
}

func (p *DatePicker) clamp(d calendar.Date) calendar.ClampResult[calendar.Date] {
	valid := calendar.ClampSolar(d)
	res := calendar.ClampRange(valid.Value, p.start, p.end)
	res.Clamped = res.Clamped || valid.Clamped
	if res.Clamped {
		p.log.Debug(config.MsgDateClamped, config.LogKeyOld, d.String(), config.LogKeyNew, res.Value.String())
	}
	return res
}

// applyChange derives the new date from one column change, applies the
// roll-over rules, clamps into range and rebuilds every column.
func (p *DatePicker) applyChange(ch IndexChange) {
	var next calendar.Date
	if p.lunar {
		next = p.lunarChange(ch)
	} else {
		next = p.solarChange(ch)
	}
	p.selected = p.clamp(next).Value
	p.rebuild()
}

func (p *DatePicker) solarChange(ch IndexChange) calendar.Date {
	old := p.selected
	switch ch.Tag {
	case ColumnYear:
		return withDay(p.yearAt(ch.Index, old.Year), old.Month, old.Day)
	case ColumnMonth:
		year, month := old.Year, p.monthAt(ch.Index, old.Month)
		if ch.Wrapped {
			year, month = rollMonth(old.Year, ch.IsAdd)
		}
		return withDay(year, month, old.Day)
	case ColumnDay:
		if ch.Wrapped {
			return rollDay(old, ch.IsAdd)
		}
		return calendar.Date{Year: old.Year, Month: old.Month, Day: p.dayAt(ch.Index, old.Day)}
	}
	return old
}

func (p *DatePicker) lunarChange(ch IndexChange) calendar.Date {
	old := calendar.SolarToLunar(p.selected)
	next := old
	switch ch.Tag {
	case ColumnYear:
		next.Year = p.yearAt(ch.Index, old.Year)
		if leap, ok := calendar.LunarLeapMonth(next.Year); !ok || leap != next.Month {
			next.IsLeapMonth = false
		}
	case ColumnMonth:
		m := calendar.LunarMonth{Month: old.Month, IsLeap: old.IsLeapMonth}
		if ch.Index >= 0 && ch.Index < len(p.months) {
			m = p.months[ch.Index]
		}
		if ch.Wrapped {
			next.Year = old.Year + yearStep(ch.IsAdd)
			months := calendar.LunarMonths(next.Year)
			if len(months) > 0 {
				m = months[0]
				if !ch.IsAdd {
					m = months[len(months)-1]
				}
			}
		}
		next.Month, next.IsLeapMonth = m.Month, m.IsLeap
	case ColumnDay:
		if ch.Wrapped {
			return rollDay(p.selected, ch.IsAdd)
		}
		next.Day = p.dayAt(ch.Index, old.Day)
	}
	if last := calendar.LunarMaxDay(next.Year, next.Month, next.IsLeapMonth); last > 0 && next.Day > last {
		next.Day = last
	}
	return calendar.LunarToSolar(calendar.ClampLunar(next).Value)
}

// withDay builds year/month/day with the day clamped to the month length.
func withDay(year, month, day int) calendar.Date {
	if last := calendar.SolarMaxDay(year, month); last > 0 && day > last {
		day = last
	}
	return calendar.Date{Year: year, Month: month, Day: day}
}

// rollMonth moves past December or before January.
func rollMonth(year int, add bool) (int, int) {
	if add {
		return year + 1, 1
	}
	return year - 1, 12
}

// rollDay moves past the last day or before the first day of a month.
func rollDay(d calendar.Date, add bool) calendar.Date {
	if add {
		return d.AddDays(1)
	}
	return d.AddDays(-1)
}

func yearStep(add bool) int {
	if add {
		return 1
	}
	return -1
}

func (p *DatePicker) yearAt(i, fallback int) int { return intAt(p.years, i, fallback) }
func (p *DatePicker) dayAt(i, fallback int) int  { return intAt(p.days, i, fallback) }

func (p *DatePicker) monthAt(i, fallback int) int {
	if i < 0 || i >= len(p.months) {
		return fallback
	}
	return p.months[i].Month
}

func intAt(values []int, i, fallback int) int {
	if i < 0 || i >= len(values) {
		return fallback
	}
	return values[i]
}

// -----------------------------------------------------------------------------
// Column building
// -----------------------------------------------------------------------------

// rebuild refreshes every column's options and index from the selection.
func (p *DatePicker) rebuild() {
	if p.lunar {
		p.lunarColumnsBuilding()
	} else {
		p.solarColumnsBuilding()
	}
}

func (p *DatePicker) solarColumnsBuilding() {
	sel := p.selected

	p.years = p.years[:0]
	years := make([]RangeContent, 0, p.end.Year-p.start.Year+1)
	for y := p.start.Year; y <= p.end.Year; y++ {
		p.years = append(p.years, y)
		years = append(years, RangeContent{Text: p.labels.Year(y)})
	}

	firstMonth, lastMonth := 1, 12
	if sel.Year == p.start.Year {
		firstMonth = p.start.Month
	}
	if sel.Year == p.end.Year {
		lastMonth = p.end.Month
	}
	p.months = p.months[:0]
	var months []RangeContent
	for m := firstMonth; m <= lastMonth; m++ {
		p.months = append(p.months, calendar.LunarMonth{Month: m})
		months = append(months, RangeContent{Text: p.labels.SolarMonth(m)})
	}

	firstDay, lastDay := 1, calendar.SolarMaxDay(sel.Year, sel.Month)
	if sel.Year == p.start.Year && sel.Month == p.start.Month {
		firstDay = p.start.Day
	}
	if sel.Year == p.end.Year && sel.Month == p.end.Month {
		lastDay = p.end.Day
	}
	p.days = p.days[:0]
	var days []RangeContent
	for d := firstDay; d <= lastDay; d++ {
		p.days = append(p.days, d)
		days = append(days, RangeContent{Text: p.labels.SolarDay(d)})
	}

	p.columns[ColumnYear].SetOptions(years, sel.Year-p.start.Year)
	p.columns[ColumnMonth].SetOptions(months, sel.Month-firstMonth)
	p.columns[ColumnDay].SetOptions(days, sel.Day-firstDay)
}

func (p *DatePicker) lunarColumnsBuilding() {
	sel := calendar.SolarToLunar(p.selected)
	ls := calendar.SolarToLunar(p.start)
	le := calendar.SolarToLunar(p.end)

	p.years = p.years[:0]
	var years []RangeContent
	for y := ls.Year; y <= le.Year; y++ {
		p.years = append(p.years, y)
		years = append(years, RangeContent{Text: p.labels.LunarYear(y)})
	}

	p.months = p.months[:0]
	var months []RangeContent
	monthIndex := 0
	for _, m := range calendar.LunarMonths(sel.Year) {
		if sel.Year == ls.Year && lunarMonthOrder(sel.Year, m) < lunarMonthOrder(ls.Year, monthOf(ls)) {
			continue
		}
		if sel.Year == le.Year && lunarMonthOrder(sel.Year, m) > lunarMonthOrder(le.Year, monthOf(le)) {
			continue
		}
		if m == monthOf(sel) {
			monthIndex = len(p.months)
		}
		p.months = append(p.months, m)
		months = append(months, RangeContent{Text: p.labels.LunarMonth(m.Month, m.IsLeap)})
	}

	firstDay, lastDay := 1, calendar.LunarMaxDay(sel.Year, sel.Month, sel.IsLeapMonth)
	if sel.Year == ls.Year && monthOf(sel) == monthOf(ls) {
		firstDay = ls.Day
	}
	if sel.Year == le.Year && monthOf(sel) == monthOf(le) {
		lastDay = le.Day
	}
	p.days = p.days[:0]
	var days []RangeContent
	for d := firstDay; d <= lastDay; d++ {
		p.days = append(p.days, d)
		days = append(days, RangeContent{Text: p.labels.LunarDay(d)})
	}

	p.columns[ColumnYear].SetOptions(years, sel.Year-ls.Year)
	p.columns[ColumnMonth].SetOptions(months, monthIndex)
	p.columns[ColumnDay].SetOptions(days, sel.Day-firstDay)
}

func monthOf(l calendar.LunarDate) calendar.LunarMonth {
	return calendar.LunarMonth{Month: l.Month, IsLeap: l.IsLeapMonth}
}

// lunarMonthOrder is the position of m in its year, leap month included.
func lunarMonthOrder(year int, m calendar.LunarMonth) int {
	for i, lm := range calendar.LunarMonths(year) {
		if lm == m {
			return i
		}
	}
	return -1
}
