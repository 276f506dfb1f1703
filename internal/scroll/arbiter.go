package scroll

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// Owner is whoever holds the current touch sequence.
type Owner int

const (
	OwnerNone Owner = iota
	OwnerSelfDrag
	OwnerSelfFling
	OwnerRegionDrag
	OwnerOverscroll
	OwnerPassThrough
)

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerSelfDrag:
		return "self-drag"
	case OwnerSelfFling:
		return "self-fling"
	case OwnerRegionDrag:
		return "region-drag"
	case OwnerOverscroll:
		return "overscroll"
	case OwnerPassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// Claimed reports whether the container, not its content, owns the sequence.
func (o Owner) Claimed() bool {
	switch o {
	case OwnerSelfDrag, OwnerSelfFling, OwnerRegionDrag, OwnerOverscroll:
		return true
	}
	return false
}

// arbiter is the per-container touch sequence state.
type arbiter struct {
	owner          Owner
	downX, downY   float64
	lastX, lastY   float64
	scrolling      bool
	draggingRegion bool
	tracker        VelocityTracker
	hit            Rect
}

func (a *arbiter) reset() {
	a.owner = OwnerNone
	a.scrolling = false
	a.draggingRegion = false
	a.tracker.Reset()
}

// distance returns the finger travel since the previous move once the
// pointer has left the touch slop around the down point.
func (a *arbiter) distance(ev TouchEvent, slop float64) (dx, dy float64, ok bool) {
	if !a.scrolling {
		ox, oy := ev.X-a.downX, ev.Y-a.downY
		if ox*ox+oy*oy <= slop*slop {
			return 0, 0, false
		}
		a.scrolling = true
	}
	dx, dy = a.lastX-ev.X, a.lastY-ev.Y
	a.lastX, a.lastY = ev.X, ev.Y
	return dx, dy, true
}

// HandleTouch consumes one event of the pointer stream and reports whether
// the container claimed it. Unclaimed events are forwarded to the
// dispatcher; when the container takes over from its content the content
// receives a synthetic cancel first.
func (c *Container) HandleTouch(ev TouchEvent) bool {
	if c.manual || !c.attached {
		c.dispatch(ev)
		return false
	}
	switch ev.Action {
	case ActionDown:
		c.onDown(ev)
		return false
	case ActionMove:
		return c.onMove(ev)
	case ActionUp, ActionCancel:
		return c.onRelease(ev)
	}
	return false
}

func (c *Container) onDown(ev TouchEvent) {
	now := c.clock()
	c.touching = true
	c.cancelDrivers(now)

	a := &c.arb
	a.reset()
	a.downX, a.downY = ev.X, ev.Y
	a.lastX, a.lastY = ev.X, ev.Y
	a.tracker.Add(ev)
	a.draggingRegion = c.region != nil && c.region.Bounds(&a.hit) && a.hit.Contains(ev.X, ev.Y)

	c.dispatch(ev)
}

func (c *Container) onMove(ev TouchEvent) bool {
	a := &c.arb
	a.tracker.Add(ev)
	dx, dy, ok := a.distance(ev, c.cfg.TouchSlop)
	if !ok {
		if a.owner.Claimed() {
			return true
		}
		c.dispatch(ev)
		return false
	}
	return c.route(ev, c.drag(dx, dy))
}

// drag applies one step of finger travel and returns the resulting owner.
func (c *Container) drag(dx, dy float64) Owner {
	if math.Abs(dx) > math.Abs(dy) || math.Abs(dx) > c.cfg.TouchSlop {
		return OwnerPassThrough
	}
	delta := int(math.Round(dy))
	if delta == 0 {
		if c.arb.owner.Claimed() {
			return c.arb.owner
		}
		return OwnerPassThrough
	}
	dir := directionOf(delta)
	if !c.mayScroll(dir) {
		return OwnerPassThrough
	}
	if o := c.overscroll; o != nil {
		switch {
		case dir == Reveal && c.store.AtTop():
			o.ApplyPull(-delta)
			return OwnerOverscroll
		case dir == Collapse && o.Active():
			before := o.Pulled()
			o.ApplyPull(-delta)
			delta -= before - o.Pulled()
			if delta == 0 {
				return OwnerOverscroll
			}
		}
	}
	if !c.store.ScrollBy(delta) {
		return OwnerPassThrough
	}
	if c.arb.draggingRegion {
		return OwnerRegionDrag
	}
	return OwnerSelfDrag
}

// mayScroll applies the nested-content-first rules.
func (c *Container) mayScroll(dir Direction) bool {
	switch dir {
	case Reveal:
		if c.delegate != nil && !c.arb.draggingRegion && !c.selfDriven &&
			c.delegate.CanScrollVertically(int(Reveal)) {
			return false
		}
	case Collapse:
		if c.delegate != nil && c.store.AtBound() && c.delegate.CanScrollVertically(int(Collapse)) {
			return false
		}
		if c.header != nil && c.header.CanScrollVertically(int(Collapse)) {
			return false
		}
	}
	return true
}

// route records the new owner and performs any hand-off.
func (c *Container) route(ev TouchEvent, owner Owner) bool {
	a := &c.arb
	prev := a.owner
	if owner.Claimed() {
		if !prev.Claimed() {
			c.dispatch(ev.WithAction(ActionCancel))
			c.logHandoff(prev, owner)
		}
		a.owner = owner
		return true
	}
	if prev.Claimed() {
		c.logHandoff(prev, OwnerPassThrough)
		if ev.Action == ActionMove && c.store.AtBound() {
			// re-anchor the content at the current point
			c.dispatch(ev.WithAction(ActionDown))
		}
	}
	a.owner = OwnerPassThrough
	c.dispatch(ev)
	return false
}

func (c *Container) onRelease(ev TouchEvent) bool {
	now := c.clock()
	a := &c.arb
	if ev.Action == ActionUp {
		a.tracker.Add(ev)
	}
	c.touching = false

	flung := ev.Action == ActionUp && a.scrolling && c.startFling(now)
	var claimed bool
	switch {
	case flung:
		claimed = c.route(ev, OwnerSelfFling)
	case a.owner.Claimed():
		claimed = true
	default:
		c.dispatch(ev)
	}

	if o := c.overscroll; o != nil && o.Active() {
		o.Relax(now)
	}
	if !flung {
		c.scroller.ClearResidual()
		c.armIdle(now)
		a.owner = OwnerNone
	}
	a.scrolling = false
	a.draggingRegion = false
	return claimed
}

// startFling evaluates the fling recognizer at release and starts the
// scroller when the gesture qualifies.
func (c *Container) startFling(now time.Time) bool {
	vx, vy := c.arb.tracker.Velocity()
	if math.Abs(vy) < c.cfg.MinFlingVelocity || math.Abs(vx) > math.Abs(vy) {
		return false
	}
	if c.overscroll != nil && c.overscroll.Active() {
		return false
	}
	// finger down scrolls the offset toward 0
	velocity := -vy
	dir := Collapse
	if velocity < 0 {
		dir = Reveal
	}
	if !c.mayScroll(dir) {
		return false
	}
	return c.flingAt(now, velocity, dir)
}

// flingAt starts the scroller from the current offset. Flings projected
// to travel less than MinFlingDistance, or that would not move the offset
// at all, are dropped.
func (c *Container) flingAt(now time.Time, velocity float64, dir Direction) bool {
	start, bound := c.store.Offset(), c.store.Bound()
	out := c.scroller.Fling(now, start, velocity, 0, bound)
	if math.Abs(float64(out.Unclamped-start)) < c.cfg.MinFlingDistance {
		c.scroller.Abort(now)
		c.scroller.ClearResidual()
		return false
	}
	target := out.Final
	if c.closeUp != nil {
		target = c.store.Clamp(c.closeUp.ResolveFlingTarget(dir, start, out.Final, bound))
		if target != out.Final {
			c.scroller.SetFinal(target)
			out.Final, out.Unclamped = target, target
		}
	}
	// a fling already resting at the bound still hands its travel over
	if target == start && out.Unclamped <= bound {
		c.scroller.Abort(now)
		c.scroller.ClearResidual()
		return false
	}
	c.fling = flingState{active: true, outcome: out}
	c.log.Debug("fling",
		zap.Float64("velocity", out.Velocity),
		zap.Int("from", start),
		zap.Int("to", target),
		zap.Int("unclamped", out.Unclamped),
		zap.Duration("duration", out.Duration))
	return true
}

func (c *Container) logHandoff(from, to Owner) {
	c.log.Debug("gesture hand-off",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("offset", c.store.Offset()))
}
