package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuartileIdleTargets(t *testing.T) {
	t.Parallel()

	p := QuartileCloseUp{}
	cases := []struct {
		offset, bound, want int
	}{
		{offset: 10, bound: 200, want: 0},
		{offset: 49, bound: 200, want: 0},
		{offset: 50, bound: 200, want: 100},
		{offset: 120, bound: 200, want: 100},
		{offset: 150, bound: 200, want: 100},
		{offset: 151, bound: 200, want: 200},
		{offset: 199, bound: 200, want: 200},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, p.ResolveIdleTarget(tc.offset, tc.bound), "offset %d", tc.offset)
	}
}

func TestQuartileIdleTargetIsIdempotent(t *testing.T) {
	t.Parallel()

	p := QuartileCloseUp{}
	for _, bound := range []int{2, 3, 7, 100, 199, 200, 333} {
		for offset := 1; offset < bound; offset++ {
			target := p.ResolveIdleTarget(offset, bound)
			require.GreaterOrEqual(t, target, 0)
			require.LessOrEqual(t, target, bound)
			require.Equal(t, target, p.ResolveIdleTarget(target, bound),
				"bound %d offset %d", bound, offset)
		}
	}
}

func TestQuartileFlingTargets(t *testing.T) {
	t.Parallel()

	p := QuartileCloseUp{}
	require.Equal(t, 100, p.ResolveFlingTarget(Collapse, 10, 60, 200))
	require.Equal(t, 200, p.ResolveFlingTarget(Collapse, 10, 140, 200))
	require.Equal(t, 200, p.ResolveFlingTarget(Collapse, 150, 200, 200))
	require.Equal(t, 100, p.ResolveFlingTarget(Reveal, 190, 120, 200))
	require.Equal(t, 0, p.ResolveFlingTarget(Reveal, 190, 80, 200))
}

func TestAnimationInterpolates(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	var a Animation
	a.Start(clk.Now(), 150, 100, 200*time.Millisecond, nil)
	require.True(t, a.Running())
	require.Equal(t, 100, a.Target())

	clk.advance(100 * time.Millisecond)
	v, running := a.Advance(clk.Now())
	require.True(t, running)
	require.Equal(t, 125, v)

	clk.advance(150 * time.Millisecond)
	v, running = a.Advance(clk.Now())
	require.False(t, running)
	require.Equal(t, 100, v)
	require.False(t, a.Running())
}

func TestAnimationZeroDurationJumps(t *testing.T) {
	t.Parallel()

	var a Animation
	a.Start(time.Now(), 0, 80, 0, Decelerate)
	v, running := a.Advance(time.Now())
	require.False(t, running)
	require.Equal(t, 80, v)
}

func TestEasingEndpoints(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "linear", "decelerate", "accelerate", "ease", "Accelerate_Decelerate", "spring"} {
		e, err := EasingByName(name)
		require.NoError(t, err, name)
		require.InDelta(t, 0, e(0), 1e-9, name)
		require.InDelta(t, 1, e(1), 1e-9, name)
	}

	_, err := EasingByName("bouncy")
	require.Error(t, err)

	require.Greater(t, Decelerate(0.5), Linear(0.5))
	require.Less(t, Accelerate(0.5), Linear(0.5))
	require.InDelta(t, 0.5, AccelerateDecelerate(0.5), 1e-9)
}

func TestSpringEasingSettles(t *testing.T) {
	t.Parallel()

	e := Spring(6, 1)
	prev := 0.0
	for i := 1; i <= 20; i++ {
		v := e(float64(i) / 20)
		require.GreaterOrEqual(t, v, prev-1e-9)
		prev = v
	}
	require.Equal(t, 1.0, e(1))
}

func TestIdleTimerFiresOnce(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	timer := NewIdleTimer(100 * time.Millisecond)
	require.False(t, timer.Fire(clk.Now()), "not armed")

	timer.Arm(clk.Now())
	deadline, ok := timer.Deadline()
	require.True(t, ok)
	require.Equal(t, clk.Now().Add(100*time.Millisecond), deadline)

	clk.advance(60 * time.Millisecond)
	require.False(t, timer.Fire(clk.Now()))
	timer.Arm(clk.Now())
	clk.advance(60 * time.Millisecond)
	require.False(t, timer.Fire(clk.Now()), "re-arming pushes the deadline back")
	clk.advance(40 * time.Millisecond)
	require.True(t, timer.Fire(clk.Now()))
	require.False(t, timer.Fire(clk.Now()))

	timer.Arm(clk.Now())
	timer.Cancel()
	clk.advance(time.Second)
	require.False(t, timer.Fire(clk.Now()))
}

func TestPagerNotifiesObservers(t *testing.T) {
	t.Parallel()

	a, b := &page{max: 10}, &page{max: 20}
	p := NewPager(a, b)
	var seen []int
	p.OnPageSelected(func(index int, _ Content) { seen = append(seen, index) })
	require.Equal(t, []int{0}, seen)

	p.Select(1)
	p.Select(1)
	p.Select(7)
	require.Equal(t, []int{0, 1}, seen)
	require.Same(t, b, p.Current())

	p.Next()
	require.Equal(t, 0, p.Index())
	p.Prev()
	require.Equal(t, 1, p.Index())
	require.Equal(t, []int{0, 1, 0, 1}, seen)
	require.Nil(t, p.Page(5))

	empty := NewPager()
	empty.Next()
	require.Nil(t, empty.Current())
}
