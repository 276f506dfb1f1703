package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplineIsMonotonic(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0, splinePosition[0], 1e-3)
	require.Equal(t, 1.0, splinePosition[splineSamples])
	for i := 1; i <= splineSamples; i++ {
		require.GreaterOrEqual(t, splinePosition[i], splinePosition[i-1], "sample %d", i)
	}
	f, _ := splineAt(1.5)
	require.Equal(t, 1.0, f)
}

func TestSplineDistanceGrowsWithVelocity(t *testing.T) {
	t.Parallel()

	s := NewScroller(1, false)
	prevDist, prevDur := 0.0, time.Duration(0)
	for _, v := range []float64{200, 800, 1600, 4000} {
		d := s.SplineDistance(v)
		require.Greater(t, d, prevDist)
		require.Equal(t, d, s.SplineDistance(-v), "distance is symmetric")
		dur := s.SplineDuration(v)
		require.Greater(t, dur, prevDur)
		prevDist, prevDur = d, dur
	}
	require.Zero(t, s.SplineDistance(0))

	slick := NewScroller(1, false)
	slick.SetFriction(DefaultFriction / 2)
	require.Greater(t, slick.SplineDistance(1000), s.SplineDistance(1000))
}

func TestPlanClampsFinalButKeepsUnclamped(t *testing.T) {
	t.Parallel()

	s := NewScroller(1, false)
	out := s.Plan(100, 3000, 0, 200)
	require.Equal(t, 200, out.Final)
	require.Greater(t, out.Unclamped, 200)
	require.Equal(t, 200, out.Bound)

	out = s.Plan(100, -3000, 0, 200)
	require.Equal(t, 0, out.Final)
	require.Less(t, out.Unclamped, 0)
}

func TestScrollerStopsEarlyAtBound(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	s := NewScroller(1, false)
	out := s.Fling(clk.Now(), 0, 3000, 0, 200)
	require.Greater(t, out.Unclamped, 200)

	var last FlingFrame
	prev := 0
	for !s.Finished() {
		clk.advance(16 * time.Millisecond)
		last = s.Advance(clk.Now())
		require.GreaterOrEqual(t, last.Offset, prev)
		prev = last.Offset
	}
	require.Equal(t, 200, last.Offset)
	require.True(t, last.Done)
	require.Less(t, last.Elapsed, out.Duration)
}

func TestScrollerSetFinalRescales(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	s := NewScroller(1, false)
	out := s.Fling(clk.Now(), 0, 1200, 0, 1000)
	s.SetFinal(100)
	clk.advance(out.Duration)
	frame := s.Advance(clk.Now())
	require.True(t, frame.Done)
	require.Equal(t, 100, frame.Offset)
}

func TestFlywheelAddsResidualVelocity(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	s := NewScroller(1, true)
	s.Fling(clk.Now(), 0, 2000, 0, 10000)
	clk.advance(50 * time.Millisecond)
	s.Advance(clk.Now())
	s.Abort(clk.Now())

	out := s.Fling(clk.Now(), 0, 2000, 0, 10000)
	require.Greater(t, out.Velocity, 2000.0)

	// residual is consumed by one fling
	s.Abort(clk.Now())
	s.ClearResidual()
	out = s.Fling(clk.Now(), 0, 2000, 0, 10000)
	require.Equal(t, 2000.0, out.Velocity)
}

func TestFlywheelIgnoresOppositeDirection(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	s := NewScroller(1, true)
	s.Fling(clk.Now(), 5000, 2000, 0, 10000)
	clk.advance(30 * time.Millisecond)
	s.Abort(clk.Now())

	out := s.Fling(clk.Now(), 5000, -2000, 0, 10000)
	require.Equal(t, -2000.0, out.Velocity)
}

func TestVelocityTrackerSteadyMotion(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	var v VelocityTracker
	for i := 0; i < 6; i++ {
		v.Add(TouchEvent{X: 10, Y: 500 - float64(i)*20, Time: clk.Now()})
		clk.advance(10 * time.Millisecond)
	}
	vx, vy := v.Velocity()
	require.InDelta(t, 0, vx, 1e-6)
	require.InDelta(t, -2000, vy, 1e-6)

	v.Reset()
	vx, vy = v.Velocity()
	require.Zero(t, vx)
	require.Zero(t, vy)
}

func TestVelocityTrackerPauseMeansStop(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	var v VelocityTracker
	for i := 0; i < 4; i++ {
		v.Add(TouchEvent{Y: 500 - float64(i)*20, Time: clk.Now()})
		clk.advance(10 * time.Millisecond)
	}
	clk.advance(80 * time.Millisecond)
	v.Add(TouchEvent{Y: 440, Time: clk.Now()})

	_, vy := v.Velocity()
	require.Zero(t, vy)
}
