package picker

import (
	"encoding/json"
	"fmt"

	"github.com/tartampluch/go-datepicker/internal/calendar"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// Status tells listeners whether a value is final.
type Status int

const (
	// StatusSelected marks a committed value (key press, settled gesture).
	StatusSelected Status = 0
	// StatusScrolling marks a value reached while a gesture or motion is in flight.
	StatusScrolling Status = 1
)

func (s Status) String() string {
	if s == StatusScrolling {
		return "scrolling"
	}
	return "selected"
}

// IndexChange is the message a column returns when its selected index moved.
type IndexChange struct {
	Tag      int
	IsAdd    bool
	Index    int
	Previous int
	// Wrapped is set when a looping column passed from its last option to its
	// first (IsAdd) or from its first to its last.
	Wrapped bool
	// Notify is false for internal realignments that must not reach listeners.
	Notify bool
	Status Status
}

// -----------------------------------------------------------------------------
// Key input
// -----------------------------------------------------------------------------

// KeyCode identifies the keys a column reacts to.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyDpadUp
	KeyDpadDown
	KeyHome
	KeyEnd
)

// KeyAction distinguishes press from release.
type KeyAction int

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
)

// KeyEvent is a platform key event translated for the picker.
type KeyEvent struct {
	Code   KeyCode
	Action KeyAction
}

// -----------------------------------------------------------------------------
// Change events
// -----------------------------------------------------------------------------

// PickerKind names the orchestrator that produced an event.
type PickerKind int

const (
	KindDate PickerKind = iota
	KindTime
	KindTextPicker
)

// DateValue is the structured value of a date picker.
type DateValue struct {
	Solar calendar.Date
	// Lunar is set when the picker displays the lunar calendar.
	Lunar *calendar.LunarDate
}

// TimeValue is the structured value of a time picker.
type TimeValue struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// ChangeEvent is delivered to OnChange listeners.
type ChangeEvent struct {
	Kind   PickerKind
	Status Status

	Date *DateValue
	Time *TimeValue

	// Values and Indexes describe the selection of a text picker.
	Values  []string
	Indexes []int

	// Texts holds the display string of every column's selected row.
	Texts []string
}

type dateJSON struct {
	Year   int                 `json:"year"`
	Month  int                 `json:"month"`
	Day    int                 `json:"day"`
	Lunar  *calendar.LunarDate `json:"lunar,omitempty"`
	Status Status              `json:"status"`
}

type timeJSON struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Second int    `json:"second"`
	Status Status `json:"status"`
}

type textJSON struct {
	Value  []string `json:"value"`
	Index  []int    `json:"index"`
	Status Status   `json:"status"`
}

// JSON encodes the event in the wire shape expected by script callbacks.
// Date months are zero-based there.
func (e ChangeEvent) JSON() ([]byte, error) {
	var payload any
	switch {
	case e.Kind == KindDate && e.Date != nil:
		payload = dateJSON{
			Year:   e.Date.Solar.Year,
			Month:  e.Date.Solar.Month - 1,
			Day:    e.Date.Solar.Day,
			Lunar:  e.Date.Lunar,
			Status: e.Status,
		}
	case e.Kind == KindTime && e.Time != nil:
		payload = timeJSON{Hour: e.Time.Hour, Minute: e.Time.Minute, Second: e.Time.Second, Status: e.Status}
	case e.Kind == KindTextPicker:
		payload = textJSON{Value: nonNil(e.Values), Index: nonNilInts(e.Indexes), Status: e.Status}
	default:
		return nil, fmt.Errorf("%s: kind %d without value", config.ErrEventEncode, e.Kind)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrEventEncode, err)
	}
	return data, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
