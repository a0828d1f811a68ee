package picker

import (
	"math"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
)

// FrameFunc is a per-frame property update. It receives the time elapsed since
// the previous frame and returns false once the animation has finished.
type FrameFunc func(dt time.Duration) bool

// Handle controls a running animation.
type Handle interface {
	Stop()
}

// Animator is the platform animation driver. It calls the FrameFunc once per
// frame on the UI thread until the function returns false or the handle is stopped.
type Animator interface {
	Start(fn FrameFunc) Handle
}

// Curve maps linear progress in [0,1] to eased progress.
type Curve func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// EaseOut decelerates towards the end (cubic).
func EaseOut(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Tween interpolates between two values over a fixed duration.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Curve    Curve
}

// At returns the value after elapsed time and whether the tween is complete.
func (tw Tween) At(elapsed time.Duration) (float64, bool) {
	if tw.Duration <= 0 || elapsed >= tw.Duration {
		return tw.To, true
	}
	curve := tw.Curve
	if curve == nil {
		curve = Linear
	}
	t := math.Max(0, float64(elapsed)/float64(tw.Duration))
	return tw.From + (tw.To-tw.From)*curve(t), false
}

// -----------------------------------------------------------------------------
// Manual driver
// -----------------------------------------------------------------------------

// ManualAnimator runs frames only when told to. It makes animations
// deterministic in tests and in headless hosts.
type ManualAnimator struct {
	Frame  time.Duration
	active []*manualHandle
}

type manualHandle struct {
	fn      FrameFunc
	stopped bool
}

func (h *manualHandle) Stop() { h.stopped = true }

// NewManualAnimator returns a driver ticking at the nominal frame interval.
func NewManualAnimator() *ManualAnimator {
	return &ManualAnimator{Frame: config.FrameInterval}
}

// Start implements Animator.
func (m *ManualAnimator) Start(fn FrameFunc) Handle {
	h := &manualHandle{fn: fn}
	m.active = append(m.active, h)
	return h
}

// Tick runs one frame of every running animation.
func (m *ManualAnimator) Tick() {
	current := m.active
	m.active = nil
	var keep []*manualHandle
	for _, h := range current {
		if h.stopped {
			continue
		}
		if h.fn(m.Frame) && !h.stopped {
			keep = append(keep, h)
		}
	}
	// Animations started during this frame were appended to m.active.
	m.active = append(keep, m.active...)
}

// Flush ticks until no animation is running or maxFrames is reached.
// It returns the number of frames run.
func (m *ManualAnimator) Flush(maxFrames int) int {
	n := 0
	for m.Active() > 0 && n < maxFrames {
		m.Tick()
		n++
	}
	return n
}

// Active returns the number of animations still running.
func (m *ManualAnimator) Active() int {
	n := 0
	for _, h := range m.active {
		if !h.stopped {
			n++
		}
	}
	return n
}
