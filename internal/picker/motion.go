package picker

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/tartampluch/go-datepicker/internal/config"
)

// motion is a running column animation. step advances it by one frame and
// reports whether it reached its end. A frame yields at most one index change
// so the owner can rebuild dependent columns before the next option is read.
type motion interface {
	step(c *Column, dt time.Duration) ([]IndexChange, bool)
}

// resetMotion eases the offset back to zero after a release.
type resetMotion struct {
	tween   Tween
	elapsed time.Duration
}

func (m *resetMotion) step(c *Column, dt time.Duration) ([]IndexChange, bool) {
	m.elapsed += dt
	v, done := m.tween.At(m.elapsed)
	c.scrollDelta = v
	c.applyOffsets()
	c.dirty = true
	return nil, done
}

// clickMotion carries a clicked row to the centre.
type clickMotion struct {
	tween   Tween
	elapsed time.Duration
	applied float64
	dir     ScrollDirection
	steps   int
	crossed int
}

func (m *clickMotion) step(c *Column, dt time.Duration) ([]IndexChange, bool) {
	m.elapsed += dt
	v, done := m.tween.At(m.elapsed)
	changes := c.scrollBy(v-m.applied, StatusScrolling)
	m.applied = v
	m.crossed += len(changes)
	if len(changes) > 0 || !done {
		// Offset left over past a crossed row is consumed on later frames.
		return changes, false
	}
	if m.crossed < m.steps {
		// Rounding left the tween just short of the last row.
		ch, ok := c.InnerHandleScroll(m.dir, false, true)
		if ok {
			m.crossed++
			ch.Status = StatusScrolling
			c.scrollDelta = 0
			c.applyOffsets()
			return []IndexChange{ch}, false
		}
	}
	return nil, true
}

// tossMotion follows a critically damped spring towards a row-aligned target
// predicted from the release velocity.
type tossMotion struct {
	spring  harmonica.Spring
	frame   time.Duration
	pos     float64
	vel     float64
	target  float64
	applied float64
	elapsed time.Duration
}

// startToss predicts where a fling of velocity v comes to rest and starts the
// spring towards the nearest row boundary.
func (c *Column) startToss(v float64) {
	shift := c.ShiftDistance(c.MiddleIndex(), dirFor(v))
	if shift <= 0 {
		c.PlayResetAnimation()
		return
	}
	predicted := v * math.Abs(v) / (2 * config.TossDeceleration)
	rows := math.Round((c.scrollDelta + predicted) / shift)
	if !c.loop {
		// Positive rows scroll up, towards index 0.
		rows = math.Max(-float64(len(c.options)-1-c.currentIndex), math.Min(float64(c.currentIndex), rows))
	}
	c.motion = &tossMotion{
		vel:    v,
		target: rows*shift - c.scrollDelta,
	}
	c.state = StateFling
	c.log.Debug(config.MsgTossStart, config.LogKeyVelocity, v, config.LogKeyRows, rows)
}

func (m *tossMotion) step(c *Column, dt time.Duration) ([]IndexChange, bool) {
	if dt <= 0 {
		dt = config.FrameInterval
	}
	if dt != m.frame {
		m.spring = harmonica.NewSpring(dt.Seconds(), config.TossAngularFrequency, config.TossDampingRatio)
		m.frame = dt
	}
	m.elapsed += dt
	if m.elapsed < config.TossMaxDuration {
		m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
	} else {
		m.pos, m.vel = m.target, 0
	}

	// The spring may run several rows ahead in one frame; only the first
	// crossed row is taken now and the rest carries over.
	pending := m.pos - m.applied
	shift := c.ShiftDistance(c.MiddleIndex(), dirFor(pending))
	for _, piece := range splitDelta(pending, shift/2) {
		changes := c.scrollBy(piece, StatusScrolling)
		m.applied += piece
		if c.blocked {
			more, _ := c.PlayResetAnimation()
			return append(changes, more...), false
		}
		if len(changes) > 0 {
			return changes, false
		}
	}

	settled := math.Abs(m.target-m.pos) < config.TossSettleDistance && math.Abs(m.vel) < config.TossSettleVelocity
	if !settled {
		return nil, false
	}
	if ch, ok := c.alignStep(); ok {
		return []IndexChange{ch}, false
	}
	return nil, true
}

// alignStep scrolls one option when what is left of the offset is at least
// half a row.
func (c *Column) alignStep() (IndexChange, bool) {
	if c.scrollDelta == 0 {
		return IndexChange{}, false
	}
	dir := dirFor(c.scrollDelta)
	shift := c.ShiftDistance(c.MiddleIndex(), dir)
	if shift <= 0 || math.Abs(c.scrollDelta) < shift/2 {
		return IndexChange{}, false
	}
	ch, ok := c.InnerHandleScroll(dir, false, true)
	if !ok {
		return IndexChange{}, false
	}
	ch.Status = StatusScrolling
	c.scrollDelta -= dir.offsetSign() * shift
	c.applyOffsets()
	return ch, true
}

// splitDelta cuts delta into pieces no longer than limit so that a fast frame
// still crosses rows one at a time.
func splitDelta(delta, limit float64) []float64 {
	if limit <= 0 || math.Abs(delta) <= limit {
		return []float64{delta}
	}
	n := int(math.Ceil(math.Abs(delta) / limit))
	piece := delta / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = piece
	}
	return out
}
