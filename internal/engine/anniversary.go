package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-datepicker/internal/calendar"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// Anniversary is a date to repeat every year, either on the same solar day or
// on the same day of the lunar calendar.
type Anniversary struct {
	UID       string
	Name      string
	Origin    calendar.Date
	YearKnown bool
	Lunar     bool
}

// FromContact builds the anniversary of a contact's birthday.
func FromContact(c Contact, lunar bool) Anniversary {
	return Anniversary{
		UID:       c.UID,
		Name:      c.Name,
		Origin:    c.Birthday,
		YearKnown: c.YearKnown,
		Lunar:     lunar,
	}
}

// Occurrence is one yearly repetition of an anniversary.
type Occurrence struct {
	Year  int // Solar year for solar anniversaries, lunar year otherwise.
	Date  calendar.Date
	Count int // Years since the origin, 0 when the year is unknown.
}

// Occurrences lists the repetitions whose (solar or lunar) year lies in
// [from, to]. Years before the origin produce nothing.
func (a Anniversary) Occurrences(from, to int) []Occurrence {
	var out []Occurrence

	originYear := a.Origin.Year
	var lunarOrigin calendar.LunarDate
	if a.Lunar {
		lunarOrigin = calendar.SolarToLunar(a.Origin)
		originYear = lunarOrigin.Year
	}

	for y := from; y <= to; y++ {
		if a.YearKnown && y < originYear {
			continue
		}

		var date calendar.Date
		if a.Lunar {
			if y < calendar.MinYear || y > calendar.MaxYear {
				continue
			}
			// A leap month repeats on its regular month, a 30th on the 29th
			// of short months.
			l := calendar.ClampLunar(calendar.LunarDate{Year: y, Month: lunarOrigin.Month, Day: lunarOrigin.Day}).Value
			date = calendar.LunarToSolar(l)
		} else {
			// Feb 29 falls back to Feb 28 in common years.
			date = calendar.Date{Year: y, Month: a.Origin.Month, Day: min(a.Origin.Day, calendar.SolarMaxDay(y, a.Origin.Month))}
		}

		count := 0
		if a.YearKnown {
			count = y - originYear
		}
		out = append(out, Occurrence{Year: y, Date: date, Count: count})
	}
	return out
}

// Clock supplies "today" for the export window.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Exporter renders anniversaries as an iCalendar feed.
type Exporter struct {
	Clock Clock

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary func(name string, count int, yearKnown bool) string
}

// Export encodes every occurrence of items falling in the export window
// (config.ExportYearsBefore years back to config.ExportYearsAfter ahead).
func (e *Exporter) Export(ctx context.Context, items ...Anniversary) ([]byte, error) {
	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}
	now := clock.Now()
	from, to := now.Year()-config.ExportYearsBefore, now.Year()+config.ExportYearsAfter

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		category := config.CategorySolar
		if item.Lunar {
			category = config.CategoryLunar
		}

		for _, occ := range item.Occurrences(from, to) {
			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, item.UID, occ.Year, config.ICalDomain))
			event.Props.SetText(config.PropSummary, e.summary(item, occ))
			event.Props.SetText(config.PropCategories, category)

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(occ.Date.Time(time.UTC))
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	if len(cal.Children) == 0 {
		return nil, errors.New(config.ErrNoOccurrences)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(cal.Children),
	)
	return buf.Bytes(), nil
}

func (e *Exporter) summary(item Anniversary, occ Occurrence) string {
	if e.FormatSummary != nil {
		return e.FormatSummary(item.Name, occ.Count, item.YearKnown)
	}
	return item.Name
}

// WriteFile stores an export with owner-only permissions.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return nil
}
