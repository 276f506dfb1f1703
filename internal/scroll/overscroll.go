package scroll

import (
	"math"
	"time"
)

// DefaultRelaxDuration is how long a released pull takes to settle.
const DefaultRelaxDuration = 250 * time.Millisecond

// OverscrollListener drives the rubber-band visuals.
type OverscrollListener interface {
	// OnPulled receives the pull ratio in [0, 1].
	OnPulled(ratio float64)
	// OnReleased is called once when a pull starts relaxing.
	OnReleased()
}

// MaxPullFunc derives the maximum pull distance from the bound.
type MaxPullFunc func(bound int) int

// BoundDivisor returns a MaxPullFunc allowing bound/divisor of pull.
func BoundDivisor(divisor int) MaxPullFunc {
	if divisor <= 0 {
		divisor = 2
	}
	return func(bound int) int { return bound / divisor }
}

// Overscroll tracks how far the header has been pulled past offset 0.
// The pull never affects the real offset.
type Overscroll struct {
	listener OverscrollListener
	maxPull  int
	pulled   int
	notified float64 // last ratio handed to the listener, -1 before any

	relaxing      bool
	relaxStart    time.Time
	relaxFrom     int
	relaxRatio    float64
	relaxDuration time.Duration
}

// NewOverscroll returns a controller at rest.
func NewOverscroll(listener OverscrollListener, maxPull int, relax time.Duration) *Overscroll {
	if relax <= 0 {
		relax = DefaultRelaxDuration
	}
	return &Overscroll{
		listener:      listener,
		maxPull:       max(maxPull, 0),
		notified:      -1,
		relaxDuration: relax,
	}
}

// SetMaxPull changes the limit, shrinking the current pull if needed.
func (o *Overscroll) SetMaxPull(n int) {
	o.maxPull = max(n, 0)
	if o.pulled > o.maxPull {
		o.pulled = o.maxPull
		o.publish(o.ratio())
	}
}

// SetRelaxDuration sets how long a relax takes.
func (o *Overscroll) SetRelaxDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultRelaxDuration
	}
	o.relaxDuration = d
}

func (o *Overscroll) MaxPull() int { return o.maxPull }
func (o *Overscroll) Pulled() int  { return o.pulled }

// Active reports whether any pull is outstanding.
func (o *Overscroll) Active() bool { return o.pulled > 0 }

func (o *Overscroll) Relaxing() bool { return o.relaxing }

// Ratio is the current pull as a fraction of the maximum.
func (o *Overscroll) Ratio() float64 { return o.ratio() }

// ApplyPull adds delta to the pull (positive pulls further) and clamps to
// [0, maxPull]. Any running relax is cancelled.
func (o *Overscroll) ApplyPull(delta int) {
	o.relaxing = false
	o.pulled += delta
	if o.pulled > o.maxPull {
		o.pulled = o.maxPull
	}
	if o.pulled < 0 {
		o.pulled = 0
	}
	o.publish(o.ratio())
}

// Cancel stops a running relax, leaving the pull where it is.
func (o *Overscroll) Cancel() {
	o.relaxing = false
}

// Relax animates the pull back to zero. It reports false, doing nothing,
// when already at rest.
func (o *Overscroll) Relax(now time.Time) bool {
	o.relaxing = false
	if o.pulled == 0 && o.notified <= 0 {
		return false
	}
	o.relaxing = true
	o.relaxStart = now
	o.relaxFrom = o.pulled
	o.relaxRatio = o.ratio()
	if o.listener != nil {
		o.listener.OnReleased()
	}
	return true
}

// Advance steps a running relax and reports whether it continues.
func (o *Overscroll) Advance(now time.Time) bool {
	if !o.relaxing {
		return false
	}
	fraction := float64(now.Sub(o.relaxStart)) / float64(o.relaxDuration)
	if fraction >= 1 {
		o.relaxing = false
		o.pulled = 0
		o.publish(0)
		return false
	}
	if fraction < 0 {
		fraction = 0
	}
	o.pulled = o.relaxFrom - int(float64(o.relaxFrom)*fraction)
	o.publish(o.relaxRatio * (1 - fraction))
	return true
}

// Reset drops the pull immediately.
func (o *Overscroll) Reset() {
	o.relaxing = false
	o.pulled = 0
	o.publish(0)
}

func (o *Overscroll) ratio() float64 {
	if o.maxPull <= 0 || o.pulled <= 0 {
		return 0
	}
	return float64(o.pulled) / float64(o.maxPull)
}

// publish notifies only when the ratio, rounded to hundredths, changes.
func (o *Overscroll) publish(ratio float64) {
	rounded := math.Round(ratio*100) / 100
	if rounded == o.notified || (o.notified < 0 && rounded == 0) {
		return
	}
	o.notified = rounded
	if o.listener != nil {
		o.listener.OnPulled(rounded)
	}
}
