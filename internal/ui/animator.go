package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/picker"
)

// FyneAnimator drives picker motions from Fyne's animation loop, so every
// frame runs on the UI thread.
type FyneAnimator struct{}

type fyneHandle struct {
	anim    *fyne.Animation
	stopped bool
}

// Start implements picker.Animator.
func (FyneAnimator) Start(fn picker.FrameFunc) picker.Handle {
	h := &fyneHandle{}
	last := time.Now()
	// The duration only paces the tick callback; the frame function decides
	// when the motion ends.
	h.anim = fyne.NewAnimation(time.Second, func(float32) {
		if h.stopped {
			return
		}
		now := time.Now()
		dt := now.Sub(last)
		last = now
		if dt <= 0 {
			dt = config.FrameInterval
		}
		if !fn(dt) {
			h.Stop()
		}
	})
	h.anim.Curve = fyne.AnimationLinear
	h.anim.RepeatCount = fyne.AnimationRepeatForever
	h.anim.Start()
	return h
}

// Stop implements picker.Handle.
func (h *fyneHandle) Stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	h.anim.Stop()
}
