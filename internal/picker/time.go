package picker

import (
	"log/slog"
)

// Time column roles. Their positions depend on the options, see TimePicker.Tags.
const (
	TagAmPm = iota + 10
	TagHour
	TagMinute
	TagSecond
)

// TimeOptions configures a TimePicker.
type TimeOptions struct {
	Selected   TimeValue
	Hour24     bool
	ShowSecond bool
	// DisableLoop stops the hour, minute and second columns from wrapping.
	DisableLoop bool
	Disabled    bool

	Theme    *Theme
	Measurer Measurer
	Labels   Labeler
	Animator Animator
	Logger   *slog.Logger
}

// TimePicker combines hour and minute columns, an optional second column and,
// in 12-hour mode, a leading AM/PM column.
type TimePicker struct {
	*orchestrator

	opts     TimeOptions
	selected TimeValue
	labels   Labeler
}

// NewTimePicker builds a time picker.
func NewTimePicker(opts TimeOptions) *TimePicker {
	p := &TimePicker{opts: opts, labels: opts.Labels}
	if p.labels == nil {
		p.labels = NumericLabels{}
	}
	if p.opts.Theme == nil {
		p.opts.Theme = DefaultTheme()
	}
	p.orchestrator = newOrchestrator(p, opts.Animator, opts.Logger)
	p.selected = clampTime(opts.Selected)
	p.buildColumns()
	return p
}

// Selected returns the selected time on a 24-hour clock.
func (p *TimePicker) Selected() TimeValue { return p.selected }

// Hour24 reports whether the hour column uses the 24-hour clock.
func (p *TimePicker) Hour24() bool { return p.opts.Hour24 }

// SetSelected selects a time. Out-of-range fields are clamped.
func (p *TimePicker) SetSelected(v TimeValue) {
	p.selected = clampTime(v)
	p.refresh()
}

// SetHour24 switches between the 12 and 24-hour clock.
func (p *TimePicker) SetHour24(on bool) {
	if p.opts.Hour24 == on {
		return
	}
	p.Stop()
	p.opts.Hour24 = on
	p.buildColumns()
}

// SetLabels swaps the label source.
func (p *TimePicker) SetLabels(l Labeler) {
	if l == nil {
		l = NumericLabels{}
	}
	p.labels = l
	p.refresh()
}

// Tags returns the role of each column in display order.
func (p *TimePicker) Tags() []int {
	tags := make([]int, len(p.columns))
	for i, c := range p.columns {
		tags[i] = c.Tag()
	}
	return tags
}

// Event builds the change event for the current selection.
func (p *TimePicker) Event(status Status) ChangeEvent {
	v := p.selected
	return ChangeEvent{Kind: KindTime, Status: status, Time: &v, Texts: p.texts()}
}

// buildColumns recreates the column set; it changes only with the clock mode.
func (p *TimePicker) buildColumns() {
	var tags []int
	if !p.opts.Hour24 {
		tags = append(tags, TagAmPm)
	}
	tags = append(tags, TagHour, TagMinute)
	if p.opts.ShowSecond {
		tags = append(tags, TagSecond)
	}
	p.columns = p.columns[:0]
	for _, tag := range tags {
		p.columns = append(p.columns, NewColumn(ColumnConfig{
			Tag:      tag,
			Loop:     tag != TagAmPm && !p.opts.DisableLoop,
			Disabled: p.opts.Disabled,
			Theme:    p.opts.Theme,
			Measurer: p.opts.Measurer,
			Logger:   p.opts.Logger,
		}, nil, 0))
	}
	p.refresh()
}

// refresh rewrites options and indexes from the selection.
func (p *TimePicker) refresh() {
	for _, c := range p.columns {
		switch c.Tag() {
		case TagAmPm:
			c.SetOptions(TextOptions(p.labels.AmPm(false), p.labels.AmPm(true)), boolIndex(p.selected.Hour >= 12))
		case TagHour:
			if p.opts.Hour24 {
				c.SetOptions(p.numbers(24, 0, p.labels.Hour), p.selected.Hour)
			} else {
				// 12, 1, 2 ... 11
				c.SetOptions(p.numbers(12, 0, func(i int) string {
					if i == 0 {
						return p.labels.Hour(12)
					}
					return p.labels.Hour(i)
				}), p.selected.Hour%12)
			}
		case TagMinute:
			c.SetOptions(p.numbers(60, 0, p.labels.Minute), p.selected.Minute)
		case TagSecond:
			c.SetOptions(p.numbers(60, 0, p.labels.Second), p.selected.Second)
		}
	}
}

func (p *TimePicker) numbers(n, from int, label func(int) string) []RangeContent {
	out := make([]RangeContent, n)
	for i := range out {
		out[i] = RangeContent{Text: label(from + i)}
	}
	return out
}

// applyChange folds a column change into the selection. In 12-hour mode an
// hour column wrapping between 11 and 12 flips AM and PM.
func (p *TimePicker) applyChange(ch IndexChange) {
	v := p.selected
	pm := v.Hour >= 12
	switch ch.Tag {
	case TagAmPm:
		pm = ch.Index == 1
		v.Hour = v.Hour%12 + boolIndex(pm)*12
	case TagHour:
		if p.opts.Hour24 {
			v.Hour = ch.Index
			break
		}
		if ch.Wrapped {
			pm = !pm
		}
		v.Hour = ch.Index + boolIndex(pm)*12
	case TagMinute:
		v.Minute = ch.Index
	case TagSecond:
		v.Second = ch.Index
	}
	p.selected = clampTime(v)
	p.refresh()
}

func clampTime(v TimeValue) TimeValue {
	v.Hour = max(0, min(23, v.Hour))
	v.Minute = max(0, min(59, v.Minute))
	v.Second = max(0, min(59, v.Second))
	return v
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
