package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/jask/headerscroll/internal/scroll"
)

const minPageFling = 50

// listPage is one scrollable page below the header. Positions are in the
// same units as the container offset.
type listPage struct {
	title    string
	rows     []string
	rowUnits int
	viewport int // rows visible with the header collapsed

	pos int

	dragging bool
	lastY    float64
	tracker  scroll.VelocityTracker
	scroller *scroll.Scroller
	flinging bool
	carry    scroll.Animation
}

func newListPage(title string, rows, rowUnits int) *listPage {
	p := &listPage{
		title:    title,
		rowUnits: max(rowUnits, 1),
		scroller: scroll.NewScroller(1, false),
	}
	p.rows = make([]string, rows)
	for i := range p.rows {
		p.rows[i] = fmt.Sprintf("%s item %03d", title, i+1)
	}
	return p
}

func (p *listPage) setViewport(rows int) {
	p.viewport = max(rows, 0)
	p.pos = p.clamp(p.pos)
}

func (p *listPage) maxPos() int {
	return max(len(p.rows)-p.viewport, 0) * p.rowUnits
}

func (p *listPage) clamp(y int) int {
	return min(max(y, 0), p.maxPos())
}

func (p *listPage) CanScrollVertically(direction int) bool {
	if direction < 0 {
		return p.pos > 0
	}
	return p.pos < p.maxPos()
}

func (p *listPage) ScrollByOffset(dy int) {
	p.pos = p.clamp(p.pos + dy)
}

// scrollBy moves the page and returns the part of dy it consumed.
func (p *listPage) scrollBy(dy int) int {
	prev := p.pos
	p.ScrollByOffset(dy)
	return p.pos - prev
}

func (p *listPage) setPos(y int) {
	p.stop(time.Time{})
	p.pos = p.clamp(y)
}

// Dispatch receives the touch events the container passes through.
func (p *listPage) Dispatch(ev scroll.TouchEvent) {
	switch ev.Action {
	case scroll.ActionDown:
		p.stop(ev.Time)
		p.dragging = true
		p.lastY = ev.Y
		p.tracker.Reset()
		p.tracker.Add(ev)
	case scroll.ActionMove:
		if !p.dragging {
			return
		}
		p.tracker.Add(ev)
		dy := int(math.Round(p.lastY - ev.Y))
		if dy == 0 {
			return
		}
		p.lastY = ev.Y
		p.ScrollByOffset(dy)
	case scroll.ActionUp:
		if !p.dragging {
			return
		}
		p.dragging = false
		p.tracker.Add(ev)
		_, vy := p.tracker.Velocity()
		if math.Abs(vy) >= minPageFling {
			p.fling(ev.Time, -vy)
		}
	case scroll.ActionCancel:
		p.dragging = false
	}
}

func (p *listPage) fling(now time.Time, velocity float64) {
	out := p.scroller.Fling(now, p.pos, velocity, 0, p.maxPos())
	p.flinging = out.Final != p.pos
}

// Continue carries a container fling into the page: the page travels the
// overshoot over the time the fling had left.
func (p *listPage) Continue(now time.Time, overshoot int, remaining time.Duration) {
	p.stop(now)
	to := p.clamp(p.pos + overshoot)
	if to == p.pos {
		return
	}
	p.carry.Start(now, p.pos, to, remaining, scroll.Decelerate)
}

func (p *listPage) stop(now time.Time) {
	if p.flinging {
		p.scroller.Abort(now)
		p.scroller.ClearResidual()
		p.flinging = false
	}
	p.carry.Cancel()
}

func (p *listPage) Animating() bool {
	return p.flinging || p.carry.Running()
}

// Advance steps any page animation and reports whether more frames are needed.
func (p *listPage) Advance(now time.Time) bool {
	if p.carry.Running() {
		v, _ := p.carry.Advance(now)
		p.pos = p.clamp(v)
	}
	if p.flinging {
		frame := p.scroller.Advance(now)
		p.pos = p.clamp(frame.Offset)
		p.flinging = !frame.Done
	}
	return p.Animating()
}

// firstRow is the index of the first row shown.
func (p *listPage) firstRow() int {
	return p.pos / p.rowUnits
}
