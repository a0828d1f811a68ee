package picker

import (
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// ScrollDirection is the direction the selection moves in.
type ScrollDirection int

const (
	// ScrollUp selects the previous option; the content moves down.
	ScrollUp ScrollDirection = iota
	// ScrollDown selects the next option; the content moves up.
	ScrollDown
)

// dirFor maps a signed content offset to the scroll it leads to.
func dirFor(offset float64) ScrollDirection {
	if offset > 0 {
		return ScrollUp
	}
	return ScrollDown
}

// offsetSign is the sign of the content offset that scrolls in dir.
func (d ScrollDirection) offsetSign() float64 {
	if d == ScrollUp {
		return 1
	}
	return -1
}

// ScrollState is the gesture state of a column.
type ScrollState int

const (
	StateIdle ScrollState = iota
	StateDragging
	StateFling
	StateSnapping
)

func (s ScrollState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateFling:
		return "fling"
	case StateSnapping:
		return "snapping"
	default:
		return "idle"
	}
}

// OptionProperty holds the layout metrics of one row slot.
type OptionProperty struct {
	Height     float64
	FontHeight float64
	// PrevDistance is the shift distance towards ScrollUp, NextDistance towards ScrollDown.
	PrevDistance float64
	NextDistance float64
}

// AnimationProperty holds the resting style of a row and the styles of its two
// neighbours, between which the row interpolates while the content moves.
type AnimationProperty struct {
	FontSize     float64
	UpFontSize   float64
	DownFontSize float64
	Color        color.Color
	UpColor      color.Color
	DownColor    color.Color
	Weight       FontWeight
	UpWeight     FontWeight
	DownWeight   FontWeight
}

// Row is one slot of the fixed display pool.
type Row struct {
	Content  RangeContent
	Visible  bool
	Tier     Tier
	Style    TextStyle
	Property OptionProperty
	Anim     AnimationProperty
	// Offset is the vertical translation from the row's resting position.
	Offset float64
}

// ColumnConfig configures a new column.
type ColumnConfig struct {
	Tag      int
	Loop     bool
	Disabled bool
	Theme    *Theme
	Measurer Measurer
	Logger   *slog.Logger
}

// Column owns one scrollable list of options and turns gestures and keys into
// index changes. It never calls back into its owner: every operation returns
// the IndexChange messages it produced.
type Column struct {
	tag      int
	loop     bool
	disabled bool
	theme    *Theme
	measurer Measurer
	log      *slog.Logger

	kind         ColumnKind
	options      []RangeContent
	currentIndex int
	rows         []Row

	state           ScrollState
	scrollDelta     float64
	distancePercent float64
	yOffset         float64
	yLast           float64
	motion          motion
	blocked         bool
	touchBreak      bool
	animationBreak  bool
	dirty           bool
}

// NewColumn creates a column with a row pool sized by the theme.
// A column without a valid theme keeps no rows and ignores every operation.
func NewColumn(cfg ColumnConfig, options []RangeContent, index int) *Column {
	c := &Column{
		tag:      cfg.Tag,
		loop:     cfg.Loop,
		disabled: cfg.Disabled,
		theme:    cfg.Theme,
		measurer: cfg.Measurer,
		log:      cfg.Logger,
	}
	if c.measurer == nil {
		c.measurer = DefaultMeasurer
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With(config.LogKeyComponent, config.CompColumn, config.LogKeyColumn, cfg.Tag)
	if c.theme.valid() {
		c.rows = make([]Row, c.theme.ShowCount)
	}
	c.SetOptions(options, index)
	return c
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

func (c *Column) Tag() int                 { return c.tag }
func (c *Column) Kind() ColumnKind         { return c.kind }
func (c *Column) Loop() bool               { return c.loop }
func (c *Column) Disabled() bool           { return c.disabled }
func (c *Column) Count() int               { return len(c.options) }
func (c *Column) CurrentIndex() int        { return c.currentIndex }
func (c *Column) State() ScrollState       { return c.state }
func (c *Column) ScrollDelta() float64     { return c.scrollDelta }
func (c *Column) DistancePercent() float64 { return c.distancePercent }
func (c *Column) Dirty() bool              { return c.dirty }

// MarkClean acknowledges that the host has rendered the current rows.
func (c *Column) MarkClean() { c.dirty = false }

// Interrupted reports whether the running gesture cut a motion short.
func (c *Column) Interrupted() bool { return c.touchBreak || c.animationBreak }

// MiddleIndex is the slot of the selected row.
func (c *Column) MiddleIndex() int { return len(c.rows) / 2 }

// Options returns a copy of the option list.
func (c *Column) Options() []RangeContent {
	return append([]RangeContent(nil), c.options...)
}

// Selected returns the selected option, or false for an empty column.
func (c *Column) Selected() (RangeContent, bool) {
	if c.currentIndex < 0 || c.currentIndex >= len(c.options) {
		return RangeContent{}, false
	}
	return c.options[c.currentIndex], true
}

// Rows returns a copy of the row pool.
func (c *Column) Rows() []Row {
	return append([]Row(nil), c.rows...)
}

// -----------------------------------------------------------------------------
// Model updates
// -----------------------------------------------------------------------------

// SetOptions replaces the options in place and selects index, clamped into range.
// Scroll offset and motion are preserved so that an orchestrator can rebuild a
// column while it is being dragged.
func (c *Column) SetOptions(options []RangeContent, index int) {
	c.options = append(c.options[:0], options...)
	c.kind = kindOf(c.options)
	switch {
	case len(c.options) == 0 || index < 0:
		index = 0
	case index >= len(c.options):
		index = len(c.options) - 1
	}
	c.currentIndex = index
	c.refreshRows(true)
	c.dirty = true
}

// SetCurrentIndex selects an option without notifying anyone.
func (c *Column) SetCurrentIndex(index int) bool {
	if index < 0 || index >= len(c.options) {
		return false
	}
	c.currentIndex = index
	c.refreshRows(true)
	c.dirty = true
	return true
}

// SetTheme swaps the theme. A theme whose pool size differs from the existing
// pool is rejected and the column keeps its last good theme.
func (c *Column) SetTheme(t *Theme) bool {
	if !t.valid() || (c.rows != nil && t.ShowCount != len(c.rows)) {
		c.log.Debug(config.MsgStructural)
		return false
	}
	if c.rows == nil {
		c.rows = make([]Row, t.ShowCount)
	}
	c.theme = t
	c.refreshRows(true)
	c.dirty = true
	return true
}

// SetDisabled switches all rows to the disabled style.
func (c *Column) SetDisabled(disabled bool) {
	c.disabled = disabled
	c.refreshRows(true)
	c.dirty = true
}

// SetLoop enables or disables wraparound.
func (c *Column) SetLoop(loop bool) {
	c.loop = loop
	c.refreshRows(true)
	c.dirty = true
}

// ready guards every layout-dependent operation.
func (c *Column) ready() bool {
	if !c.theme.valid() || len(c.rows) != c.theme.ShowCount {
		c.log.Debug(config.MsgStructural)
		return false
	}
	return true
}

// canMove reports whether a scroll in dir would change the index.
func (c *Column) canMove(dir ScrollDirection) bool {
	n := len(c.options)
	switch {
	case n <= 1:
		return false
	case c.loop:
		return true
	case dir == ScrollDown:
		return c.currentIndex < n-1
	default:
		return c.currentIndex > 0
	}
}

// -----------------------------------------------------------------------------
// Row layout
// -----------------------------------------------------------------------------

func tierFor(slot, mid int) Tier {
	switch d := absInt(slot - mid); {
	case d == 0:
		return TierSelected
	case d == 1:
		return TierCandidate
	default:
		return TierDisappear
	}
}

// optionAt returns the option rel rows away from the selection.
func (c *Column) optionAt(rel int) (RangeContent, bool) {
	n := len(c.options)
	if n == 0 {
		return RangeContent{}, false
	}
	i := c.currentIndex + rel
	if c.loop {
		i = ((i % n) + n) % n
	} else if i < 0 || i >= n {
		return RangeContent{}, false
	}
	return c.options[i], true
}

// refreshRows rebuilds the visible window around the current index.
func (c *Column) refreshRows(updateAnimationProperties bool) {
	if !c.ready() {
		return
	}
	mid := c.MiddleIndex()
	for slot := range c.rows {
		r := &c.rows[slot]
		r.Tier = tierFor(slot, mid)
		r.Content, r.Visible = c.optionAt(slot - mid)

		base := c.theme.TierStyle(r.Tier, c.disabled)
		r.Property.Height = c.theme.OptionHeight
		if slot == mid {
			r.Property.Height = c.theme.DividerSpacing
		}
		r.Property.FontHeight = c.measurer.FontHeight(base)

		if updateAnimationProperties {
			up := c.theme.TierStyle(tierFor(slot-1, mid), c.disabled)
			down := c.theme.TierStyle(tierFor(slot+1, mid), c.disabled)
			r.Anim = AnimationProperty{
				FontSize:     base.FontSize,
				UpFontSize:   up.FontSize,
				DownFontSize: down.FontSize,
				Color:        base.Color,
				UpColor:      up.Color,
				DownColor:    down.Color,
				Weight:       base.Weight,
				UpWeight:     up.Weight,
				DownWeight:   down.Weight,
			}
		}
	}
	for slot := range c.rows {
		c.rows[slot].Property.PrevDistance = c.ShiftDistance(slot, ScrollUp)
		c.rows[slot].Property.NextDistance = c.ShiftDistance(slot, ScrollDown)
	}
	c.applyOffsets()
}

// ShiftDistance is the distance the content must travel for the row in slot
// to reach its neighbour slot in direction dir.
//
// Rows two or more slots away from the centre move by their own height. The
// centre row and its two neighbours blend heights with font heights so that
// the magnified selection stays continuous while crossing the centre.
func (c *Column) ShiftDistance(slot int, dir ScrollDirection) float64 {
	if !c.ready() || slot < 0 || slot >= len(c.rows) {
		return 0
	}
	cur := c.rows[slot].Property
	target := slot + 1
	if dir == ScrollDown {
		target = slot - 1
	}
	if target < 0 || target >= len(c.rows) || c.kind != KindText || absInt(slot-c.MiddleIndex()) > 1 {
		return cur.Height
	}
	next := c.rows[target].Property
	if next.FontHeight >= cur.FontHeight {
		return cur.FontHeight/2 + next.Height - next.FontHeight/2
	}
	return cur.Height - next.FontHeight/2 + cur.FontHeight/2
}

// applyOffsets translates every row by the scroll offset and interpolates styles.
func (c *Column) applyOffsets() {
	if len(c.rows) == 0 {
		return
	}
	shift := c.ShiftDistance(c.MiddleIndex(), dirFor(c.scrollDelta))
	c.distancePercent = 0
	if shift > 0 {
		c.distancePercent = math.Max(-1, math.Min(1, c.scrollDelta/shift))
	}
	for slot := range c.rows {
		r := &c.rows[slot]
		r.Offset = c.scrollDelta
		c.textPropertiesLinearAnimation(r, c.distancePercent)
	}
}

// textPropertiesLinearAnimation interpolates a row's style towards the style
// of the slot it is moving into. A positive percent moves rows down.
func (c *Column) textPropertiesLinearAnimation(r *Row, percent float64) {
	style := c.theme.TierStyle(r.Tier, c.disabled)
	a := r.Anim
	style.FontSize, style.Color, style.Weight = a.FontSize, a.Color, a.Weight

	p := math.Abs(percent)
	if p > 0 {
		size, col, weight := a.UpFontSize, a.UpColor, a.UpWeight
		if percent > 0 {
			size, col, weight = a.DownFontSize, a.DownColor, a.DownWeight
		}
		style.FontSize = a.FontSize + (size-a.FontSize)*p
		style.Color = blendColor(a.Color, col, p)
		if p >= 0.5 {
			style.Weight = weight
		}
	}
	r.Style = style
}

// blendColor mixes two colours in RGB space, alpha included.
func blendColor(from, to color.Color, t float64) color.Color {
	switch {
	case from == nil:
		return to
	case to == nil:
		return from
	}
	cf, okFrom := colorful.MakeColor(from)
	ct, okTo := colorful.MakeColor(to)
	if !okFrom || !okTo {
		if t < 0.5 {
			return from
		}
		return to
	}
	_, _, _, af := from.RGBA()
	_, _, _, at := to.RGBA()
	r, g, b := cf.BlendRgb(ct, t).Clamped().RGB255()
	alpha := (float64(af) + (float64(at)-float64(af))*t) / 0x101
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha))}
}

// -----------------------------------------------------------------------------
// Scrolling
// -----------------------------------------------------------------------------

// InnerHandleScroll moves the selection by one option.
// It fails on an empty column or at the boundary of a non-looping column.
// updatePropertiesOnly marks the change as an internal realignment.
func (c *Column) InnerHandleScroll(dir ScrollDirection, updatePropertiesOnly, updateAnimationProperties bool) (IndexChange, bool) {
	if !c.ready() {
		return IndexChange{}, false
	}
	if !c.canMove(dir) {
		c.log.Debug(config.MsgScrollBlocked, config.LogKeyIndex, c.currentIndex)
		return IndexChange{}, false
	}
	n := len(c.options)
	prev := c.currentIndex
	next := (n + prev + 1) % n
	if dir == ScrollUp {
		next = (n + prev - 1) % n
	}
	c.currentIndex = next
	c.refreshRows(updateAnimationProperties)
	c.dirty = true

	c.log.Debug(config.MsgIndexChanged, config.LogKeyOld, prev, config.LogKeyNew, next)
	return IndexChange{
		Tag:      c.tag,
		IsAdd:    dir == ScrollDown,
		Index:    next,
		Previous: prev,
		Wrapped:  (dir == ScrollDown && next < prev) || (dir == ScrollUp && next > prev),
		Notify:   !updatePropertiesOnly,
		Status:   StatusSelected,
	}, true
}

// scrollBy moves the content by delta. Whenever the accumulated offset reaches
// the shift distance one option is scrolled and that distance is consumed; the
// rest carries over. At most one index change happens per call.
func (c *Column) scrollBy(delta float64, status Status) []IndexChange {
	c.scrollDelta += delta
	c.blocked = false
	var out []IndexChange
	if c.scrollDelta != 0 {
		dir := dirFor(c.scrollDelta)
		shift := c.ShiftDistance(c.MiddleIndex(), dir)
		switch {
		case !c.canMove(dir):
			c.blocked = true
			limit := shift * config.OverscrollRatio
			c.scrollDelta = math.Max(-limit, math.Min(limit, c.scrollDelta))
		case shift > 0 && math.Abs(c.scrollDelta) >= shift:
			if ch, ok := c.InnerHandleScroll(dir, false, true); ok {
				ch.Status = status
				out = append(out, ch)
				c.scrollDelta -= dir.offsetSign() * shift
			}
		}
	}
	c.applyOffsets()
	c.dirty = true
	return out
}

// stopMotion freezes any running motion at its current offset.
func (c *Column) stopMotion() bool {
	if c.motion == nil {
		return false
	}
	c.motion = nil
	c.log.Debug(config.MsgMotionStopped, config.LogKeyValue, c.scrollDelta)
	return true
}

func (c *Column) settle() {
	c.motion = nil
	c.state = StateIdle
	c.touchBreak = false
	c.animationBreak = false
	c.scrollDelta = 0
	c.applyOffsets()
	c.dirty = true
}

// -----------------------------------------------------------------------------
// Gestures
// -----------------------------------------------------------------------------

// DragStart begins a pan. A running motion is stopped and its offset kept.
func (c *Column) DragStart(globalY float64) {
	if !c.ready() {
		return
	}
	if c.stopMotion() {
		c.touchBreak = true
	}
	c.state = StateDragging
	c.yLast = globalY
	c.yOffset = 0
}

// DragUpdate feeds the pointer position of a pan in progress.
func (c *Column) DragUpdate(globalY float64) []IndexChange {
	if c.state != StateDragging {
		return nil
	}
	delta := globalY - c.yLast
	c.yLast = globalY
	c.yOffset += delta
	return c.scrollBy(delta, StatusScrolling)
}

// DragEnd finishes a pan. A fast release starts a toss; otherwise the column
// snaps back to the nearest row. The boolean asks the caller to drive frames.
func (c *Column) DragEnd(velocity float64) ([]IndexChange, bool) {
	if c.state != StateDragging {
		return nil, false
	}
	if math.Abs(velocity) >= config.MinTossVelocity && c.canMove(dirFor(velocity)) {
		c.startToss(velocity)
		return nil, true
	}
	return c.PlayResetAnimation()
}

// DragCancel abandons a pan or an interrupted motion and snaps back.
func (c *Column) DragCancel() ([]IndexChange, bool) {
	if c.state == StateIdle && c.scrollDelta == 0 {
		return nil, false
	}
	c.stopMotion()
	return c.PlayResetAnimation()
}

// PlayResetAnimation animates the content from its current offset to the
// nearest row-aligned rest position. An offset past half a row first scrolls
// one option in that direction.
func (c *Column) PlayResetAnimation() ([]IndexChange, bool) {
	if !c.ready() {
		return nil, false
	}
	var out []IndexChange
	if c.scrollDelta != 0 {
		dir := dirFor(c.scrollDelta)
		shift := c.ShiftDistance(c.MiddleIndex(), dir)
		if shift > 0 && math.Abs(c.scrollDelta) > shift/2 && c.canMove(dir) {
			if ch, ok := c.InnerHandleScroll(dir, false, true); ok {
				ch.Status = StatusScrolling
				out = append(out, ch)
				c.scrollDelta -= dir.offsetSign() * shift
			}
		}
	}
	if c.scrollDelta == 0 {
		c.settle()
		return out, false
	}
	c.motion = &resetMotion{tween: Tween{
		From:     c.scrollDelta,
		To:       0,
		Duration: config.ResetDuration,
		Curve:    EaseOut,
	}}
	c.state = StateSnapping
	return out, true
}

// Click scrolls the clicked row to the centre.
func (c *Column) Click(slot int) bool {
	if !c.ready() || slot < 0 || slot >= len(c.rows) || c.state == StateDragging {
		return false
	}
	step := slot - c.MiddleIndex()
	if step == 0 || !c.rows[slot].Visible {
		return false
	}
	if !c.loop {
		target := max(0, min(len(c.options)-1, c.currentIndex+step))
		step = target - c.currentIndex
		if step == 0 {
			return false
		}
	}
	if c.stopMotion() {
		c.animationBreak = true
	}

	dir := ScrollDown
	if step < 0 {
		dir = ScrollUp
	}
	shift := c.ShiftDistance(c.MiddleIndex(), dir)
	travel := -float64(step)*shift - c.scrollDelta
	c.motion = &clickMotion{
		tween: Tween{From: 0, To: travel, Duration: config.ClickDuration, Curve: EaseOut},
		dir:   dir,
		steps: absInt(step),
	}
	c.state = StateSnapping
	return true
}

// Key handles navigation keys. Moves are immediate, without animation.
func (c *Column) Key(ev KeyEvent) ([]IndexChange, bool) {
	if !c.ready() || ev.Action != KeyActionDown {
		return nil, false
	}
	var target int
	switch ev.Code {
	case KeyDpadUp, KeyDpadDown:
		c.interruptForKey()
		dir := ScrollUp
		if ev.Code == KeyDpadDown {
			dir = ScrollDown
		}
		ch, ok := c.InnerHandleScroll(dir, false, true)
		if !ok {
			return nil, true
		}
		return []IndexChange{ch}, true
	case KeyHome:
		target = 0
	case KeyEnd:
		target = len(c.options) - 1
	default:
		return nil, false
	}

	c.interruptForKey()
	prev := c.currentIndex
	if target < 0 || target == prev || !c.SetCurrentIndex(target) {
		return nil, true
	}
	return []IndexChange{{
		Tag:      c.tag,
		IsAdd:    target > prev,
		Index:    target,
		Previous: prev,
		Notify:   true,
		Status:   StatusSelected,
	}}, true
}

func (c *Column) interruptForKey() {
	if c.stopMotion() {
		c.animationBreak = true
	}
	c.settle()
}

// Step advances the running motion by one frame. The boolean is false once
// the column is at rest.
func (c *Column) Step(dt time.Duration) ([]IndexChange, bool) {
	m := c.motion
	if m == nil {
		return nil, false
	}
	changes, done := m.step(c, dt)
	if c.motion != m {
		// The motion replaced itself, e.g. a toss turning into a reset.
		return changes, c.motion != nil
	}
	if done {
		c.settle()
		return changes, false
	}
	return changes, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
