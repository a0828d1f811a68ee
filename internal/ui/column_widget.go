package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/picker"
)

// Driver is the part of a picker the widgets talk to. DatePicker, TimePicker
// and TextPicker all satisfy it.
type Driver interface {
	Columns() []*picker.Column
	DragStart(col int, globalY float64)
	DragUpdate(col int, globalY float64)
	DragEnd(col int, velocity float64)
	DragCancel(col int)
	Click(col, slot int)
	Key(col int, ev picker.KeyEvent) bool
	OnRender(fn func())
}

// velocityWeight smooths the release velocity over the last drag samples.
const velocityWeight = 0.8

// ColumnWidget renders one picker column and forwards pointer and keyboard
// input to its Driver.
type ColumnWidget struct {
	widget.BaseWidget

	driver Driver
	index  int

	dragging bool
	lastY    float64
	lastAt   time.Time
	velocity float64
	focused  bool
}

var (
	_ fyne.Draggable  = (*ColumnWidget)(nil)
	_ fyne.Tappable   = (*ColumnWidget)(nil)
	_ fyne.Focusable  = (*ColumnWidget)(nil)
	_ fyne.Scrollable = (*ColumnWidget)(nil)
)

// NewColumnWidget creates the widget for column index of d.
func NewColumnWidget(d Driver, index int) *ColumnWidget {
	w := &ColumnWidget{driver: d, index: index}
	w.ExtendBaseWidget(w)
	return w
}

func (w *ColumnWidget) column() *picker.Column {
	cols := w.driver.Columns()
	if w.index < 0 || w.index >= len(cols) {
		return nil
	}
	return cols[w.index]
}

// Dragged implements fyne.Draggable. Fyne has no drag-start event: the first
// Dragged call opens the gesture where the pointer was before Fyne's drag
// threshold, then applies the distance already travelled.
func (w *ColumnWidget) Dragged(ev *fyne.DragEvent) {
	y := float64(ev.AbsolutePosition.Y)
	now := time.Now()
	if !w.dragging {
		w.dragging = true
		w.velocity = 0
		origin := y - float64(ev.Dragged.DY)
		w.lastY, w.lastAt = y, now
		w.driver.DragStart(w.index, origin)
		if y != origin {
			w.driver.DragUpdate(w.index, y)
		}
		return
	}
	if dt := now.Sub(w.lastAt).Seconds(); dt > 0 {
		sample := (y - w.lastY) / dt
		w.velocity = velocityWeight*sample + (1-velocityWeight)*w.velocity
	}
	w.lastY, w.lastAt = y, now
	w.driver.DragUpdate(w.index, y)
}

// DragEnd implements fyne.Draggable.
func (w *ColumnWidget) DragEnd() {
	if !w.dragging {
		return
	}
	w.dragging = false
	w.driver.DragEnd(w.index, w.velocity)
}

// Tapped implements fyne.Tappable: a tap on a row scrolls it to the centre.
func (w *ColumnWidget) Tapped(ev *fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
		c.Focus(w)
	}
	col := w.column()
	if col == nil {
		return
	}
	if slot := slotAt(col.Rows(), col.MiddleIndex(), float64(w.Size().Height), float64(ev.Position.Y)); slot >= 0 {
		w.driver.Click(w.index, slot)
	}
}

// Scrolled implements fyne.Scrollable: one wheel notch moves one row.
func (w *ColumnWidget) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		w.driver.Key(w.index, picker.KeyEvent{Code: picker.KeyDpadUp})
	case ev.Scrolled.DY < 0:
		w.driver.Key(w.index, picker.KeyEvent{Code: picker.KeyDpadDown})
	}
}

// FocusGained implements fyne.Focusable.
func (w *ColumnWidget) FocusGained() {
	w.focused = true
	w.Refresh()
}

// FocusLost implements fyne.Focusable.
func (w *ColumnWidget) FocusLost() {
	w.focused = false
	w.Refresh()
}

// TypedRune implements fyne.Focusable.
func (w *ColumnWidget) TypedRune(rune) {}

// TypedKey implements fyne.Focusable. Fyne only reports presses.
func (w *ColumnWidget) TypedKey(ev *fyne.KeyEvent) {
	code := picker.KeyUnknown
	switch ev.Name {
	case fyne.KeyUp:
		code = picker.KeyDpadUp
	case fyne.KeyDown:
		code = picker.KeyDpadDown
	case fyne.KeyHome:
		code = picker.KeyHome
	case fyne.KeyEnd:
		code = picker.KeyEnd
	default:
		return
	}
	w.driver.Key(w.index, picker.KeyEvent{Code: code, Action: picker.KeyActionDown})
}

// CreateRenderer implements fyne.Widget.
func (w *ColumnWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &columnRenderer{
		w:         w,
		dividerUp: canvas.NewRectangle(theme.Color(theme.ColorNameSeparator)),
		dividerDn: canvas.NewRectangle(theme.Color(theme.ColorNameSeparator)),
		focus:     canvas.NewRectangle(theme.Color(theme.ColorNameFocus)),
	}
	r.focus.FillColor = color.Transparent
	r.focus.StrokeColor = theme.Color(theme.ColorNameFocus)
	r.focus.StrokeWidth = config.DividerThickness
	r.Refresh()
	return r
}

// rowTops returns the resting top edge of every row when the middle row is
// centred in a widget of the given height.
func rowTops(rows []picker.Row, mid int, height float64) []float64 {
	tops := make([]float64, len(rows))
	if len(rows) == 0 {
		return tops
	}
	y := height/2 - rows[mid].Property.Height/2
	for i := 0; i < mid; i++ {
		y -= rows[i].Property.Height
	}
	for i, r := range rows {
		tops[i] = y
		y += r.Property.Height
	}
	return tops
}

// slotAt maps a y coordinate to the visible row under it, -1 if none.
func slotAt(rows []picker.Row, mid int, height, y float64) int {
	tops := rowTops(rows, mid, height)
	for i, r := range rows {
		if r.Visible && y >= tops[i] && y < tops[i]+r.Property.Height {
			return i
		}
	}
	return -1
}

type columnRenderer struct {
	w         *ColumnWidget
	texts     []*canvas.Text
	dividerUp *canvas.Rectangle
	dividerDn *canvas.Rectangle
	focus     *canvas.Rectangle
	objects   []fyne.CanvasObject
}

func (r *columnRenderer) Destroy() {}

func (r *columnRenderer) Objects() []fyne.CanvasObject { return r.objects }

// MinSize fits every row but the two buffer rows at the ends of the pool.
func (r *columnRenderer) MinSize() fyne.Size {
	col := r.w.column()
	if col == nil {
		return fyne.NewSize(config.ColumnMinWidth, 0)
	}
	rows := col.Rows()
	h := 0.0
	for i := 1; i < len(rows)-1; i++ {
		h += rows[i].Property.Height
	}
	return fyne.NewSize(config.ColumnMinWidth, float32(h))
}

func (r *columnRenderer) Layout(size fyne.Size) {
	col := r.w.column()
	if col == nil {
		return
	}
	rows := col.Rows()
	mid := col.MiddleIndex()
	tops := rowTops(rows, mid, float64(size.Height))

	for i, t := range r.texts {
		if i >= len(rows) {
			break
		}
		h := float32(rows[i].Property.Height)
		textH := t.MinSize().Height
		t.Resize(fyne.NewSize(size.Width, textH))
		t.Move(fyne.NewPos(0, float32(tops[i]+rows[i].Offset)+(h-textH)/2))
	}

	if len(rows) > 0 {
		selTop := float32(tops[mid])
		selH := float32(rows[mid].Property.Height)
		r.dividerUp.Resize(fyne.NewSize(size.Width, config.DividerThickness))
		r.dividerUp.Move(fyne.NewPos(0, selTop))
		r.dividerDn.Resize(fyne.NewSize(size.Width, config.DividerThickness))
		r.dividerDn.Move(fyne.NewPos(0, selTop+selH-config.DividerThickness))
		r.focus.Resize(fyne.NewSize(size.Width, selH))
		r.focus.Move(fyne.NewPos(0, selTop))
	}
}

func (r *columnRenderer) Refresh() {
	col := r.w.column()
	var rows []picker.Row
	if col != nil {
		rows = col.Rows()
		col.MarkClean()
	}

	if r.objects == nil || len(r.texts) != len(rows) {
		r.texts = make([]*canvas.Text, len(rows))
		for i := range r.texts {
			t := canvas.NewText("", theme.Color(theme.ColorNameForeground))
			t.Alignment = fyne.TextAlignCenter
			r.texts[i] = t
		}
		r.objects = make([]fyne.CanvasObject, 0, len(rows)+3)
		for _, t := range r.texts {
			r.objects = append(r.objects, t)
		}
		r.objects = append(r.objects, r.dividerUp, r.dividerDn, r.focus)
	}

	for i, row := range rows {
		t := r.texts[i]
		t.Text = rowLabel(row.Content)
		t.TextSize = float32(row.Style.FontSize)
		t.TextStyle = fyneTextStyle(row.Style)
		if row.Style.Color != nil {
			t.Color = row.Style.Color
		}
		t.Hidden = !row.Visible
	}
	r.focus.Hidden = !r.w.focused

	r.Layout(r.w.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
}

// rowLabel flattens an option. Icons are shown by name, Fyne text has no
// inline images.
func rowLabel(c picker.RangeContent) string {
	switch {
	case c.Icon != "" && c.Text != "":
		return c.Icon + " " + c.Text
	case c.Icon != "":
		return c.Icon
	default:
		return c.Text
	}
}
