package scroll

import (
	"math"
	"time"
)

// DefaultCloseUpDuration is the snap animation length when none is configured.
const DefaultCloseUpDuration = 200 * time.Millisecond

// CloseUpPolicy picks resting offsets after idle periods and flings.
type CloseUpPolicy interface {
	// ResolveIdleTarget is called when the user went idle with
	// 0 < offset < bound. It must be a pure function of its inputs.
	ResolveIdleTarget(offset, bound int) int
	// ResolveFlingTarget may override where a fling lands.
	ResolveFlingTarget(dir Direction, offset, suggested, bound int) int
}

// QuartileCloseUp snaps to 0, bound/2 or bound.
type QuartileCloseUp struct{}

func (QuartileCloseUp) ResolveIdleTarget(offset, bound int) int {
	switch {
	case offset*4 < bound:
		return 0
	case offset*4 <= 3*bound:
		return bound / 2
	default:
		return bound
	}
}

// ResolveFlingTarget lets the fling run on to the next snap point in its
// direction of travel.
func (QuartileCloseUp) ResolveFlingTarget(dir Direction, offset, suggested, bound int) int {
	points := [3]int{0, bound / 2, bound}
	if dir == Collapse {
		for _, p := range points {
			if p >= suggested {
				return p
			}
		}
		return bound
	}
	for i := len(points) - 1; i >= 0; i-- {
		if points[i] <= suggested {
			return points[i]
		}
	}
	return 0
}

// DurationFunc computes a snap animation length.
type DurationFunc func(from, to, bound int) time.Duration

// FixedDuration always returns d.
func FixedDuration(d time.Duration) DurationFunc {
	return func(int, int, int) time.Duration { return d }
}

// Animation interpolates the offset between two values over time.
type Animation struct {
	from, to int
	start    time.Time
	duration time.Duration
	easing   Easing
	running  bool
}

// Start begins animating from -> to at now.
func (a *Animation) Start(now time.Time, from, to int, d time.Duration, easing Easing) {
	if easing == nil {
		easing = Linear
	}
	a.from, a.to = from, to
	a.start = now
	a.duration = d
	a.easing = easing
	a.running = true
}

// Advance returns the value at now and whether the animation continues.
func (a *Animation) Advance(now time.Time) (int, bool) {
	if !a.running {
		return a.to, false
	}
	fraction := 1.0
	if a.duration > 0 {
		fraction = float64(now.Sub(a.start)) / float64(a.duration)
	}
	if fraction >= 1 {
		a.running = false
		return a.to, false
	}
	if fraction < 0 {
		fraction = 0
	}
	diff := float64(a.to - a.from)
	return a.from + int(math.Round(diff*a.easing(fraction))), true
}

func (a *Animation) Cancel()       { a.running = false }
func (a *Animation) Running() bool { return a.running }
func (a *Animation) Target() int   { return a.to }
