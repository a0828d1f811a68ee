package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// PickerView lays the columns of a picker side by side and repaints them
// whenever the picker reports new row geometry.
type PickerView struct {
	widget.BaseWidget

	driver  Driver
	columns []*ColumnWidget
	box     *fyne.Container
}

// NewPickerView binds a view to d. It takes over d's render callback.
func NewPickerView(d Driver) *PickerView {
	v := &PickerView{driver: d, box: container.New(layout.NewGridLayoutWithColumns(1))}
	v.ExtendBaseWidget(v)
	v.sync()
	d.OnRender(v.Refresh)
	return v
}

// Columns returns the column widgets, left to right.
func (v *PickerView) Columns() []*ColumnWidget { return v.columns }

// sync keeps one widget per picker column; the time picker changes its
// column count when the clock format changes.
func (v *PickerView) sync() bool {
	n := len(v.driver.Columns())
	if n == len(v.columns) {
		return false
	}
	v.columns = make([]*ColumnWidget, n)
	objects := make([]fyne.CanvasObject, n)
	for i := range v.columns {
		v.columns[i] = NewColumnWidget(v.driver, i)
		objects[i] = v.columns[i]
	}
	v.box.Layout = layout.NewGridLayoutWithColumns(max(n, 1))
	v.box.Objects = objects
	return true
}

// Refresh repaints every column.
func (v *PickerView) Refresh() {
	if v.sync() {
		v.box.Refresh()
	}
	for _, c := range v.columns {
		c.Refresh()
	}
	v.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (v *PickerView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.box)
}
