package scroll

import (
	"math"
	"time"
)

const (
	inflexion      = 0.35
	startTension   = 0.5
	endTension     = 1.0
	splineP1       = startTension * inflexion
	splineP2       = 1 - endTension*(1-inflexion)
	splineSamples  = 100
	gravityEarth   = 9.80665 // m/s^2
	inchesPerMeter = 39.37
	basePPI        = 160

	// DefaultFriction matches the usual platform scroll friction.
	DefaultFriction = 0.015
)

var (
	decelerationRate = math.Log(0.78) / math.Log(0.9)
	splinePosition   = buildSpline()
)

// buildSpline samples the normalised distance curve of a fling.
func buildSpline() [splineSamples + 1]float64 {
	var pos [splineSamples + 1]float64
	xMin := 0.0
	for i := 0; i < splineSamples; i++ {
		alpha := float64(i) / splineSamples
		xMax := 1.0
		var x, coef float64
		for {
			x = xMin + (xMax-xMin)/2
			coef = 3 * x * (1 - x)
			tx := coef*((1-x)*splineP1+x*splineP2) + x*x*x
			if math.Abs(tx-alpha) < 1e-5 {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		pos[i] = coef*((1-x)*startTension+x) + x*x*x
	}
	pos[splineSamples] = 1
	return pos
}

// splineAt returns the travelled fraction and its derivative at t in [0,1].
func splineAt(t float64) (fraction, rate float64) {
	if t >= 1 {
		return 1, 0
	}
	if t <= 0 {
		t = 0
	}
	index := int(splineSamples * t)
	tInf := float64(index) / splineSamples
	tSup := float64(index+1) / splineSamples
	dInf := splinePosition[index]
	dSup := splinePosition[index+1]
	rate = (dSup - dInf) / (tSup - tInf)
	return dInf + (t-tInf)*rate, rate
}

// FlingOutcome describes where a fling lands.
type FlingOutcome struct {
	Start     int
	Bound     int
	Final     int // clamped into [min, max]
	Unclamped int // landing against an unbounded ceiling
	Duration  time.Duration
	Velocity  float64
}

// FlingFrame is the scroller position at one animation tick.
type FlingFrame struct {
	Offset  int
	Elapsed time.Duration
	Done    bool
}

// Scroller simulates ballistic deceleration. Offsets follow the physical
// curve and stop early when they reach min or max, so the moment the
// container hits its bound is the moment residual travel remains.
type Scroller struct {
	friction      float64
	physicalCoeff float64
	flywheel      bool

	start     int
	target    int
	min, max  int
	startTime time.Time
	duration  time.Duration
	velocity  float64
	current   int
	finished  bool

	residual float64
}

// NewScroller builds a scroller for the given unit density, where 1 is
// 160 units per inch.
func NewScroller(density float64, flywheel bool) *Scroller {
	if density <= 0 {
		density = 1
	}
	return &Scroller{
		friction:      DefaultFriction,
		physicalCoeff: gravityEarth * inchesPerMeter * basePPI * density * 0.84,
		flywheel:      flywheel,
		finished:      true,
	}
}

// SetFriction changes the deceleration. Non-positive values are ignored.
func (s *Scroller) SetFriction(f float64) {
	if f > 0 {
		s.friction = f
	}
}

func (s *Scroller) Friction() float64 { return s.friction }

func (s *Scroller) SetFlywheel(on bool) { s.flywheel = on }

func (s *Scroller) splineDeceleration(velocity float64) float64 {
	return math.Log(inflexion * math.Abs(velocity) / (s.friction * s.physicalCoeff))
}

// SplineDistance is how far a fling at velocity travels before resting.
func (s *Scroller) SplineDistance(velocity float64) float64 {
	if velocity == 0 {
		return 0
	}
	l := s.splineDeceleration(velocity)
	return s.friction * s.physicalCoeff * math.Exp(decelerationRate/(decelerationRate-1)*l)
}

// SplineDuration is how long a fling at velocity takes to rest.
func (s *Scroller) SplineDuration(velocity float64) time.Duration {
	if velocity == 0 {
		return 0
	}
	l := s.splineDeceleration(velocity)
	ms := 1000 * math.Exp(l/(decelerationRate-1))
	return time.Duration(ms * float64(time.Millisecond))
}

// Plan computes a fling without starting it.
func (s *Scroller) Plan(start int, velocity float64, lower, upper int) FlingOutcome {
	distance := s.SplineDistance(velocity)
	if velocity < 0 {
		distance = -distance
	}
	unclamped := start + int(math.Round(distance))
	final := unclamped
	if final > upper {
		final = upper
	}
	if final < lower {
		final = lower
	}
	return FlingOutcome{
		Start:     start,
		Bound:     upper,
		Final:     final,
		Unclamped: unclamped,
		Duration:  s.SplineDuration(velocity),
		Velocity:  velocity,
	}
}

// Fling starts a fling at now. With flywheel on, residual velocity of an
// aborted same-direction fling is added first.
func (s *Scroller) Fling(now time.Time, start int, velocity float64, lower, upper int) FlingOutcome {
	if s.flywheel && s.residual != 0 && math.Signbit(s.residual) == math.Signbit(velocity) {
		velocity += s.residual
	}
	s.residual = 0
	out := s.Plan(start, velocity, lower, upper)
	s.start = start
	s.target = out.Unclamped
	s.min, s.max = lower, upper
	s.startTime = now
	s.duration = out.Duration
	s.velocity = velocity
	s.current = start
	s.finished = out.Duration <= 0
	return out
}

// SetFinal retargets a running fling; the curve is rescaled over the same
// duration.
func (s *Scroller) SetFinal(final int) {
	s.target = final
	s.finished = false
}

// Advance returns the position at now.
func (s *Scroller) Advance(now time.Time) FlingFrame {
	elapsed := now.Sub(s.startTime)
	if s.finished {
		return FlingFrame{Offset: s.current, Elapsed: elapsed, Done: true}
	}
	t := 1.0
	if s.duration > 0 {
		t = float64(elapsed) / float64(s.duration)
	}
	fraction, _ := splineAt(t)
	pos := s.start + int(math.Round(fraction*float64(s.target-s.start)))
	done := t >= 1
	if pos >= s.max && s.target >= s.max {
		pos, done = s.max, true
	}
	if pos <= s.min && s.target <= s.min {
		pos, done = s.min, true
	}
	s.current = pos
	s.finished = done
	return FlingFrame{Offset: pos, Elapsed: elapsed, Done: done}
}

// Velocity is the instantaneous velocity at now, in units per second.
func (s *Scroller) Velocity(now time.Time) float64 {
	if s.finished || s.duration <= 0 {
		return 0
	}
	t := float64(now.Sub(s.startTime)) / float64(s.duration)
	_, rate := splineAt(t)
	return rate * float64(s.target-s.start) / s.duration.Seconds()
}

// Abort stops the fling, remembering its velocity for the flywheel.
func (s *Scroller) Abort(now time.Time) {
	if !s.finished {
		s.residual = s.Velocity(now)
	}
	s.finished = true
}

// ClearResidual drops velocity remembered by Abort.
func (s *Scroller) ClearResidual() { s.residual = 0 }

func (s *Scroller) Finished() bool { return s.finished }

func (s *Scroller) Duration() time.Duration { return s.duration }
