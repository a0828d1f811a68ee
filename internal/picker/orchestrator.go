package picker

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
)

// changeApplier is implemented by the concrete pickers. applyChange folds one
// column index change into the composite value and rebuilds dependent columns.
type changeApplier interface {
	applyChange(ch IndexChange)
	Event(status Status) ChangeEvent
}

// orchestrator owns the columns of a picker and routes input to them.
// Columns never call back into it: it applies the IndexChange messages they
// return, one gesture or key event at a time.
type orchestrator struct {
	columns  []*Column
	animator Animator
	handles  map[int]Handle
	applier  changeApplier
	pending  bool
	log      *slog.Logger

	onChange func(ChangeEvent)
	onRender func()
}

func newOrchestrator(applier changeApplier, animator Animator, logger *slog.Logger) *orchestrator {
	if animator == nil {
		animator = NewManualAnimator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &orchestrator{
		animator: animator,
		handles:  make(map[int]Handle),
		applier:  applier,
		log:      logger.With(config.LogKeyComponent, config.CompPicker),
	}
}

// OnChange registers the value-change listener.
func (o *orchestrator) OnChange(fn func(ChangeEvent)) { o.onChange = fn }

// OnRender registers a listener called whenever rows need repainting.
func (o *orchestrator) OnRender(fn func()) { o.onRender = fn }

// Columns returns the columns in display order.
func (o *orchestrator) Columns() []*Column { return o.columns }

// Column returns the column at position i, or nil.
func (o *orchestrator) Column(i int) *Column {
	if i < 0 || i >= len(o.columns) {
		return nil
	}
	return o.columns[i]
}

// Animating reports whether any column motion is running.
func (o *orchestrator) Animating() bool { return len(o.handles) > 0 }

// DragStart begins a pan on column col, stopping its running motion.
func (o *orchestrator) DragStart(col int, globalY float64) {
	c := o.Column(col)
	if c == nil {
		return
	}
	o.stop(col)
	c.DragStart(globalY)
	o.render()
}

// DragUpdate feeds a pan position to column col.
func (o *orchestrator) DragUpdate(col int, globalY float64) {
	c := o.Column(col)
	if c == nil {
		return
	}
	o.dispatch(c.DragUpdate(globalY))
	o.render()
}

// DragEnd releases a pan with the given vertical velocity in px/s.
func (o *orchestrator) DragEnd(col int, velocity float64) {
	c := o.Column(col)
	if c == nil {
		return
	}
	changes, animate := c.DragEnd(velocity)
	o.settle(col, changes, animate)
}

// DragCancel abandons a pan on column col.
func (o *orchestrator) DragCancel(col int) {
	c := o.Column(col)
	if c == nil {
		return
	}
	o.stop(col)
	changes, animate := c.DragCancel()
	o.settle(col, changes, animate)
}

// Click centres the row in slot of column col.
func (o *orchestrator) Click(col, slot int) {
	c := o.Column(col)
	if c == nil {
		return
	}
	o.stop(col)
	if c.Click(slot) {
		o.run(col)
	}
	o.render()
}

// Key routes a key event to column col and reports whether it was consumed.
func (o *orchestrator) Key(col int, ev KeyEvent) bool {
	c := o.Column(col)
	if c == nil {
		return false
	}
	o.stop(col)
	changes, handled := c.Key(ev)
	o.dispatch(changes)
	o.render()
	return handled
}

// Stop cancels every running motion, leaving columns where they are.
func (o *orchestrator) Stop() {
	for col := range o.handles {
		o.stop(col)
	}
}

func (o *orchestrator) settle(col int, changes []IndexChange, animate bool) {
	o.dispatch(changes)
	if animate {
		o.run(col)
	} else {
		o.commit()
	}
	o.render()
}

func (o *orchestrator) stop(col int) {
	if h, ok := o.handles[col]; ok {
		h.Stop()
		delete(o.handles, col)
	}
}

// run drives column col frame by frame until its motion settles.
func (o *orchestrator) run(col int) {
	c := o.columns[col]
	o.stop(col)
	var h Handle
	h = o.animator.Start(func(dt time.Duration) bool {
		changes, more := c.Step(dt)
		o.dispatch(changes)
		if !more {
			if o.handles[col] == h {
				delete(o.handles, col)
			}
			o.commit()
		}
		o.render()
		return more
	})
	o.handles[col] = h
}

// dispatch applies column changes in order and notifies listeners.
func (o *orchestrator) dispatch(changes []IndexChange) {
	for _, ch := range changes {
		o.applier.applyChange(ch)
		if !ch.Notify {
			continue
		}
		if ch.Status == StatusScrolling {
			o.pending = true
		}
		o.emit(ch.Status)
	}
}

// commit emits the final value once a gesture that changed it comes to rest.
func (o *orchestrator) commit() {
	if !o.pending {
		return
	}
	o.pending = false
	o.emit(StatusSelected)
}

func (o *orchestrator) emit(status Status) {
	if o.onChange != nil {
		o.onChange(o.applier.Event(status))
	}
}

func (o *orchestrator) render() {
	if o.onRender != nil {
		o.onRender()
	}
}

// texts returns the display string of every column's selection.
func (o *orchestrator) texts() []string {
	out := make([]string, len(o.columns))
	for i, c := range o.columns {
		if opt, ok := c.Selected(); ok {
			out[i] = opt.Text
		}
	}
	return out
}
