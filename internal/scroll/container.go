package scroll

import (
	"time"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
)

// FlingOverListener receives the travel a fling still had left when the
// container reached its bound, so nested content can carry on.
type FlingOverListener interface {
	OnFlingOver(overshoot int, remaining time.Duration)
}

// FlingOverFunc adapts a function to FlingOverListener.
type FlingOverFunc func(overshoot int, remaining time.Duration)

func (f FlingOverFunc) OnFlingOver(overshoot int, remaining time.Duration) { f(overshoot, remaining) }

// Child is one measured child reported by the host's layout pass.
type Child struct {
	Name   string
	Height int
}

type flingState struct {
	active  bool
	outcome FlingOutcome
}

// Container is one collapsible-header scroll region. It is not safe for
// concurrent use: the host calls HandleTouch and Advance from its UI loop.
type Container struct {
	cfg   Config
	log   *zap.Logger
	clock func() time.Time

	store      *Store
	scroller   *Scroller
	idle       *IdleTimer
	closeUp    CloseUpPolicy
	snap       Animation
	overscroll *Overscroll

	delegate   Delegate
	header     Delegate
	region     Region
	dispatcher Dispatcher
	flingOver  FlingOverListener

	arb        arbiter
	fling      flingState
	manual     bool
	selfDriven bool
	touching   bool
	attached   bool

	measured bool
	pending  *SavedState
}

// New returns an attached container.
func New(cfg Config) *Container {
	cfg = cfg.withDefaults()
	c := &Container{
		cfg:      cfg,
		log:      cfg.Logger,
		clock:    cfg.Clock,
		store:    NewStore(cfg.MaxScroll),
		scroller: NewScroller(cfg.Density, cfg.Flywheel),
		idle:     NewIdleTimer(cfg.ConsiderIdle),
		closeUp:  cfg.CloseUp,
		attached: true,
	}
	c.scroller.SetFriction(cfg.Friction)
	c.store.AddListener(ListenerFunc(c.onScrollChanged))
	return c
}

func (c *Container) Offset() int  { return c.store.Offset() }
func (c *Container) Bound() int   { return c.store.Bound() }
func (c *Container) State() State { return c.store.State() }
func (c *Container) Owner() Owner { return c.arb.owner }

func (c *Container) Flinging() bool { return c.fling.active }
func (c *Container) Snapping() bool { return c.snap.Running() }

// Overscroll returns the rubber-band controller, nil unless a listener is set.
func (c *Container) Overscroll() *Overscroll { return c.overscroll }

func (c *Container) Scroller() *Scroller { return c.scroller }

// AddScrollListener registers l and returns a func that removes it.
func (c *Container) AddScrollListener(l Listener) (remove func()) {
	return c.store.AddListener(l)
}

// SetDelegate sets the nested content consulted before claiming a drag.
func (c *Container) SetDelegate(d Delegate) {
	c.delegate = d
}

// SetHeaderDelegate registers a scrollable view inside the header that
// gets to scroll before the container collapses.
func (c *Container) SetHeaderDelegate(d Delegate) {
	c.header = d
}

func (c *Container) SetDraggableRegion(r Region) {
	c.region = r
}

func (c *Container) SetDispatcher(d Dispatcher) {
	c.dispatcher = d
}

func (c *Container) SetFlingOverListener(l FlingOverListener) {
	c.flingOver = l
}

// SetCloseUpPolicy installs p; nil disables idle snapping.
func (c *Container) SetCloseUpPolicy(p CloseUpPolicy) {
	c.closeUp = p
	if p == nil {
		c.idle.Cancel()
	}
}

func (c *Container) CloseUpPolicy() CloseUpPolicy { return c.closeUp }

// SetOverscrollListener enables the rubber band, or disables it when l is nil.
func (c *Container) SetOverscrollListener(l OverscrollListener) {
	if l == nil {
		if c.overscroll != nil {
			c.overscroll.Reset()
		}
		c.overscroll = nil
		return
	}
	c.overscroll = NewOverscroll(l, c.cfg.MaxPull(c.store.Bound()), c.cfg.RelaxDuration)
}

// Retune applies new physics and timing settings to a live container,
// with the same defaults as New. The bound, density, policy, logger and
// clock keep their current values.
func (c *Container) Retune(cfg Config) {
	cfg.Density = c.cfg.Density
	cfg = cfg.withDefaults()

	c.cfg.Friction = cfg.Friction
	c.cfg.Flywheel = cfg.Flywheel
	c.cfg.TouchSlop = cfg.TouchSlop
	c.cfg.MinFlingVelocity = cfg.MinFlingVelocity
	c.cfg.MinFlingDistance = cfg.MinFlingDistance
	c.cfg.ConsiderIdle = cfg.ConsiderIdle
	c.cfg.CloseUpDuration = cfg.CloseUpDuration
	c.cfg.CloseUpEasing = cfg.CloseUpEasing
	c.cfg.MaxPull = cfg.MaxPull
	c.cfg.RelaxDuration = cfg.RelaxDuration

	c.scroller.SetFriction(cfg.Friction)
	c.scroller.SetFlywheel(cfg.Flywheel)
	c.idle.SetDelay(cfg.ConsiderIdle)
	if c.overscroll != nil {
		c.overscroll.SetRelaxDuration(cfg.RelaxDuration)
		c.overscroll.SetMaxPull(c.cfg.MaxPull(c.store.Bound()))
	}
}

// Tuning returns the settings Retune controls, with defaults filled in.
func (c *Container) Tuning() Config { return c.cfg }

// ObservePager follows the pager's current page as the content delegate.
func (c *Container) ObservePager(p *Pager) {
	p.OnPageSelected(func(index int, page Content) {
		c.delegate = page
		c.log.Debug("content page selected", zap.Int("page", index))
	})
}

// SetSelfUpdateScroll switches manual control on or off. While on, every
// touch event passes through and nothing animates.
func (c *Container) SetSelfUpdateScroll(on bool) {
	c.manual = on
	if on {
		c.cancelDrivers(c.clock())
		c.touching = false
		c.arb.reset()
	}
}

func (c *Container) SelfUpdateScroll() bool { return c.manual }

// SetBound updates the bound, e.g. after the header was measured.
func (c *Container) SetBound(bound int) {
	c.store.SetBound(bound)
	if c.overscroll != nil {
		c.overscroll.SetMaxPull(c.cfg.MaxPull(c.store.Bound()))
	}
	c.measured = true
	if c.pending != nil {
		st := *c.pending
		c.pending = nil
		c.store.ScrollTo(st.Offset)
	}
}

// Layout feeds measured children. With AutoMaxScroll the bound follows the
// configured child, or the first one.
func (c *Container) Layout(children []Child) {
	if !c.cfg.AutoMaxScroll || len(children) == 0 {
		return
	}
	child := children[0]
	if name := c.cfg.AutoMaxScrollChild; name != "" {
		found := false
		for _, ch := range children {
			if ch.Name == name {
				child, found = ch, true
				break
			}
		}
		if !found {
			c.log.Warn("auto max scroll child not found, using the first child",
				zap.String("child", name),
				zap.String("suggestion", closestName(name, children)),
				zap.String("using", child.Name))
		}
	}
	if c.measured && child.Height == c.store.Bound() {
		return
	}
	c.SetBound(child.Height)
}

func closestName(name string, children []Child) string {
	best, bestDist := "", -1
	for _, ch := range children {
		d := levenshtein.ComputeDistance(name, ch.Name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = ch.Name, d
		}
	}
	return best
}

// ScrollTo jumps to y, stopping any animation.
func (c *Container) ScrollTo(y int) bool {
	c.cancelDrivers(c.clock())
	return c.store.ScrollTo(y)
}

// ScrollBy moves by dy, stopping any animation, and returns the part of dy
// the container consumed.
func (c *Container) ScrollBy(dy int) int {
	c.cancelDrivers(c.clock())
	prev := c.store.Offset()
	c.store.ScrollBy(dy)
	return c.store.Offset() - prev
}

// SmoothScrollTo animates to y using the close-up duration and easing.
func (c *Container) SmoothScrollTo(y int) {
	now := c.clock()
	c.cancelDrivers(now)
	from := c.store.Offset()
	to := c.store.Clamp(y)
	if from == to {
		return
	}
	c.startSnap(now, from, to)
}

// Fling starts a fling at velocity units per second, positive collapsing
// the header, as if a touch sequence had been released at that speed.
func (c *Container) Fling(velocity float64) bool {
	if c.manual || !c.attached || velocity == 0 {
		return false
	}
	now := c.clock()
	c.cancelDrivers(now)
	dir := Collapse
	if velocity < 0 {
		dir = Reveal
	}
	if c.flingAt(now, velocity, dir) {
		return true
	}
	c.armIdle(now)
	return false
}

// SaveState chains the container state beneath super.
func (c *Container) SaveState(super []byte) ([]byte, error) {
	return MarshalEnvelope(super, c.store.Save())
}

// RestoreState applies a blob produced by SaveState and returns the
// parent's part. Foreign blobs are returned untouched with ok false.
func (c *Container) RestoreState(blob []byte) (super []byte, ok bool) {
	super, st, err := UnmarshalEnvelope(blob)
	if err != nil {
		return super, false
	}
	c.Restore(st)
	return super, true
}

// Restore applies a saved state. The offset is re-clamped against the
// bound known now; the saved bound is only taken when none is configured.
// An auto-measured bound that is still unknown defers the offset until the
// first measurement.
func (c *Container) Restore(st SavedState) {
	if !c.cfg.AutoMaxScroll {
		if c.store.Bound() > 0 {
			c.store.ScrollTo(st.Offset)
			return
		}
		c.store.SetBound(st.Bound)
		if c.overscroll != nil {
			c.overscroll.SetMaxPull(c.cfg.MaxPull(c.store.Bound()))
		}
	} else if !c.measured {
		c.pending = &st
		return
	}
	c.store.ScrollTo(st.Offset)
}

// Attach marks the container live again after Detach.
func (c *Container) Attach() { c.attached = true }

// Detach cancels all animation and returns the state to persist.
func (c *Container) Detach() SavedState {
	c.cancelDrivers(c.clock())
	c.scroller.ClearResidual()
	if c.overscroll != nil {
		c.overscroll.Reset()
	}
	c.touching = false
	c.arb.reset()
	c.attached = false
	return c.store.Save()
}

func (c *Container) Attached() bool { return c.attached }

// Animating reports whether Advance has work for the next frame.
func (c *Container) Animating() bool {
	return c.fling.active || c.snap.Running() || (c.overscroll != nil && c.overscroll.Relaxing())
}

// NextWake reports when the idle timer is due, if armed.
func (c *Container) NextWake() (time.Time, bool) {
	return c.idle.Deadline()
}

// Advance runs one frame of deferred work and reports whether another
// frame is needed.
func (c *Container) Advance() bool {
	if !c.attached {
		return false
	}
	now := c.clock()
	if c.fling.active {
		c.stepFling(now)
	}
	if c.snap.Running() {
		c.stepSnap(now)
	}
	if c.overscroll != nil {
		c.overscroll.Advance(now)
	}
	if c.idle.Fire(now) {
		c.runIdle(now)
	}
	return c.Animating()
}

func (c *Container) stepFling(now time.Time) {
	frame := c.scroller.Advance(now)
	c.store.ScrollTo(frame.Offset)
	if !frame.Done {
		return
	}
	c.fling.active = false
	if c.arb.owner == OwnerSelfFling {
		c.arb.owner = OwnerNone
	}
	out := c.fling.outcome
	if out.Unclamped <= out.Bound || c.flingOver == nil {
		return
	}
	remaining := out.Duration - frame.Elapsed
	if remaining < 0 {
		remaining = 0
	}
	overshoot := out.Unclamped - out.Bound
	c.log.Debug("fling over",
		zap.Int("overshoot", overshoot),
		zap.Duration("remaining", remaining))
	c.flingOver.OnFlingOver(overshoot, remaining)
}

func (c *Container) stepSnap(now time.Time) {
	v, running := c.snap.Advance(now)
	c.store.ScrollTo(v)
	if !running {
		c.selfDriven = false
	}
}

func (c *Container) runIdle(now time.Time) {
	if c.closeUp == nil || c.selfDriven || c.fling.active || c.touching || c.manual {
		return
	}
	offset, bound := c.store.Offset(), c.store.Bound()
	if offset <= 0 || offset >= bound {
		return
	}
	target := c.store.Clamp(c.closeUp.ResolveIdleTarget(offset, bound))
	if target == offset {
		return
	}
	c.startSnap(now, offset, target)
}

func (c *Container) startSnap(now time.Time, from, to int) {
	d := c.cfg.CloseUpDuration(from, to, c.store.Bound())
	c.log.Debug("close-up",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Duration("duration", d))
	c.snap.Start(now, from, to, d, c.cfg.CloseUpEasing)
	c.selfDriven = true
}

// cancelDrivers stops every animation so a single driver owns the state.
func (c *Container) cancelDrivers(now time.Time) {
	if c.fling.active {
		c.scroller.Abort(now)
		c.fling.active = false
	}
	c.snap.Cancel()
	c.selfDriven = false
	c.idle.Cancel()
	if c.overscroll != nil {
		c.overscroll.Cancel()
	}
}

func (c *Container) armIdle(now time.Time) {
	if c.closeUp == nil || c.manual {
		return
	}
	offset := c.store.Offset()
	if offset > 0 && offset < c.store.Bound() {
		c.idle.Arm(now)
	}
}

func (c *Container) onScrollChanged(offset, previous, bound int) {
	if c.closeUp == nil {
		return
	}
	c.idle.Cancel()
	if !c.selfDriven && !c.touching && !c.manual {
		c.idle.Arm(c.clock())
	}
}

func (c *Container) dispatch(ev TouchEvent) {
	if c.dispatcher != nil {
		c.dispatcher.Dispatch(ev)
	}
}
