package scroll

import (
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type change struct {
	offset, previous, bound int
}

type changeRecorder struct {
	changes []change
}

func (r *changeRecorder) OnScrollChanged(offset, previous, bound int) {
	r.changes = append(r.changes, change{offset, previous, bound})
}

type dispatchRecorder struct {
	events []TouchEvent
}

func (r *dispatchRecorder) Dispatch(ev TouchEvent) { r.events = append(r.events, ev) }

func (r *dispatchRecorder) actions() []Action {
	out := make([]Action, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type flingOverCall struct {
	overshoot int
	remaining time.Duration
}

type flingOverRecorder struct {
	calls []flingOverCall
}

func (r *flingOverRecorder) OnFlingOver(overshoot int, remaining time.Duration) {
	r.calls = append(r.calls, flingOverCall{overshoot, remaining})
}

type pullRecorder struct {
	ratios   []float64
	released int
	// ratios published after the first OnReleased
	afterRelease []float64
}

func (r *pullRecorder) OnPulled(ratio float64) {
	r.ratios = append(r.ratios, ratio)
	if r.released > 0 {
		r.afterRelease = append(r.afterRelease, ratio)
	}
}

func (r *pullRecorder) OnReleased() { r.released++ }

type fixedRegion struct {
	rect    Rect
	visible bool
}

func (f fixedRegion) Bounds(dst *Rect) bool {
	*dst = f.rect
	return f.visible
}

// page is a Content whose scroll range is [0, max].
type page struct {
	pos, max int
}

func (p *page) CanScrollVertically(direction int) bool {
	if direction < 0 {
		return p.pos > 0
	}
	return p.pos < p.max
}

func (p *page) ScrollByOffset(dy int) {
	p.pos = min(max(p.pos+dy, 0), p.max)
}

// gesture builds a touch stream on a shared clock.
type gesture struct {
	clk *fakeClock
	c   *Container
	x   float64
}

func (g *gesture) down(y float64) bool {
	return g.c.HandleTouch(TouchEvent{Action: ActionDown, X: g.x, Y: y, Time: g.clk.Now()})
}

func (g *gesture) move(y float64, after time.Duration) bool {
	g.clk.advance(after)
	return g.c.HandleTouch(TouchEvent{Action: ActionMove, X: g.x, Y: y, Time: g.clk.Now()})
}

func (g *gesture) moveXY(x, y float64, after time.Duration) bool {
	g.clk.advance(after)
	return g.c.HandleTouch(TouchEvent{Action: ActionMove, X: x, Y: y, Time: g.clk.Now()})
}

func (g *gesture) up(y float64) bool {
	return g.c.HandleTouch(TouchEvent{Action: ActionUp, X: g.x, Y: y, Time: g.clk.Now()})
}

// settle advances frames until the container has no more work.
func settle(clk *fakeClock, c *Container, frame time.Duration) int {
	frames := 0
	for c.Advance() && frames < 10000 {
		clk.advance(frame)
		frames++
	}
	return frames
}

func newTestContainer(clk *fakeClock, bound int) *Container {
	return New(Config{MaxScroll: bound, Clock: clk.Now})
}
