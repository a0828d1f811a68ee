package engine

import "github.com/tartampluch/go-datepicker/internal/calendar"

// Contact is a birthday read from a vCard, ready to seed the date picker.
type Contact struct {
	// UID is a stable hash of the name and birthday.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// Birthday is the solar date of birth. When the year is unknown it holds
	// config.DefaultLeapYear so that --02-29 stays representable.
	Birthday calendar.Date

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool
}
