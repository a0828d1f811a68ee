package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimePicker_Columns(t *testing.T) {
	p := NewTimePicker(TimeOptions{Hour24: true, Selected: TimeValue{Hour: 9, Minute: 5}})
	assert.Equal(t, []int{TagHour, TagMinute}, p.Tags())
	assert.Equal(t, 24, p.Column(0).Count())
	assert.Equal(t, 60, p.Column(1).Count())
	assert.Equal(t, []string{"09", "05"}, p.texts())

	p = NewTimePicker(TimeOptions{ShowSecond: true, Selected: TimeValue{Hour: 13, Minute: 5, Second: 7}})
	assert.Equal(t, []int{TagAmPm, TagHour, TagMinute, TagSecond}, p.Tags())
	assert.False(t, p.Column(0).Loop(), "AM/PM never wraps")
	assert.Equal(t, []string{"PM", "01", "05", "07"}, p.texts())

	p = NewTimePicker(TimeOptions{Selected: TimeValue{Hour: 0}})
	assert.Equal(t, []string{"AM", "12", "00"}, p.texts())
}

// TestTimePicker_HourWrapTogglesAmPm walks the 12-hour clock across noon and back.
func TestTimePicker_HourWrapTogglesAmPm(t *testing.T) {
	p := NewTimePicker(TimeOptions{Selected: TimeValue{Hour: 11, Minute: 30}})
	const hourCol = 1

	p.Key(hourCol, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 12, Minute: 30}, p.Selected())
	assert.Equal(t, 1, p.Column(0).CurrentIndex())

	p.Key(hourCol, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 13, Minute: 30}, p.Selected())

	p.Key(hourCol, KeyEvent{Code: KeyDpadUp})
	p.Key(hourCol, KeyEvent{Code: KeyDpadUp})
	assert.Equal(t, TimeValue{Hour: 11, Minute: 30}, p.Selected())
	assert.Equal(t, 0, p.Column(0).CurrentIndex())

	p.SetSelected(TimeValue{Hour: 23, Minute: 0})
	p.Key(hourCol, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 0, Minute: 0}, p.Selected(), "11 PM to 12 AM")
}

func TestTimePicker_AmPmColumn(t *testing.T) {
	p := NewTimePicker(TimeOptions{Selected: TimeValue{Hour: 8, Minute: 15}})
	p.Key(0, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 20, Minute: 15}, p.Selected())
	p.Key(0, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 20, Minute: 15}, p.Selected(), "AM/PM does not wrap")
	p.Key(0, KeyEvent{Code: KeyDpadUp})
	assert.Equal(t, TimeValue{Hour: 8, Minute: 15}, p.Selected())
}

func TestTimePicker_24Hour(t *testing.T) {
	p := NewTimePicker(TimeOptions{Hour24: true, Selected: TimeValue{Hour: 23, Minute: 59}})
	p.Key(0, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 0, Minute: 59}, p.Selected())

	// Minutes wrap without carrying into the hour.
	p.Key(1, KeyEvent{Code: KeyDpadDown})
	assert.Equal(t, TimeValue{Hour: 0, Minute: 0}, p.Selected())
}

func TestTimePicker_SetHour24KeepsValue(t *testing.T) {
	p := NewTimePicker(TimeOptions{Selected: TimeValue{Hour: 17, Minute: 45}})
	p.SetHour24(true)
	assert.True(t, p.Hour24())
	assert.Equal(t, []int{TagHour, TagMinute}, p.Tags())
	assert.Equal(t, 17, p.Column(0).CurrentIndex())
	assert.Equal(t, TimeValue{Hour: 17, Minute: 45}, p.Selected())
}

func TestTimePicker_ClampsInput(t *testing.T) {
	p := NewTimePicker(TimeOptions{Hour24: true, Selected: TimeValue{Hour: 30, Minute: -4, Second: 99}})
	assert.Equal(t, TimeValue{Hour: 23, Minute: 0, Second: 59}, p.Selected())
}

func TestTimePicker_EventJSON(t *testing.T) {
	p := NewTimePicker(TimeOptions{Hour24: true, ShowSecond: true, Selected: TimeValue{Hour: 7, Minute: 8, Second: 9}})
	var got []ChangeEvent
	p.OnChange(func(e ChangeEvent) { got = append(got, e) })

	p.Key(2, KeyEvent{Code: KeyDpadDown})
	require.Len(t, got, 1)
	data, err := got[0].JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"hour":7,"minute":8,"second":10,"status":0}`, string(data))
}
