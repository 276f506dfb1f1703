package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverscrollPullIsClamped(t *testing.T) {
	t.Parallel()

	rec := &pullRecorder{}
	o := NewOverscroll(rec, 50, 0)

	o.ApplyPull(30)
	require.Equal(t, 30, o.Pulled())
	o.ApplyPull(40)
	require.Equal(t, 50, o.Pulled())
	require.Equal(t, 1.0, o.Ratio())
	require.Equal(t, []float64{0.6, 1.0}, rec.ratios)

	o.ApplyPull(-80)
	require.Zero(t, o.Pulled())
	require.False(t, o.Active())
	require.Equal(t, []float64{0.6, 1.0, 0}, rec.ratios)
}

func TestOverscrollPublishesOnlyOnChange(t *testing.T) {
	t.Parallel()

	rec := &pullRecorder{}
	o := NewOverscroll(rec, 1000, 0)
	o.ApplyPull(1)
	o.ApplyPull(1)
	o.ApplyPull(1)
	require.Empty(t, rec.ratios, "0.001..0.003 round to 0")

	o.ApplyPull(7)
	require.Equal(t, []float64{0.01}, rec.ratios)
	o.ApplyPull(0)
	require.Equal(t, []float64{0.01}, rec.ratios)
}

func TestOverscrollRelaxScenario(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	rec := &pullRecorder{}
	o := NewOverscroll(rec, 50, 0)
	o.ApplyPull(30)
	o.ApplyPull(40)
	require.Equal(t, 50, o.Pulled())
	require.Equal(t, 1.0, o.Ratio())

	require.True(t, o.Relax(clk.Now()))
	require.Equal(t, 1, rec.released)
	for o.Advance(clk.Now()) {
		clk.advance(10 * time.Millisecond)
	}

	require.NotEmpty(t, rec.afterRelease)
	for i := 1; i < len(rec.afterRelease); i++ {
		require.Less(t, rec.afterRelease[i], rec.afterRelease[i-1])
	}
	require.Equal(t, 0.0, rec.afterRelease[len(rec.afterRelease)-1])
	require.Zero(t, o.Pulled())
	require.False(t, o.Relaxing())
	require.Equal(t, 1, rec.released)
}

func TestOverscrollRelaxAtRestIsNoop(t *testing.T) {
	t.Parallel()

	rec := &pullRecorder{}
	o := NewOverscroll(rec, 50, 0)
	require.False(t, o.Relax(time.Now()))
	require.Zero(t, rec.released)
	require.Empty(t, rec.ratios)
}

func TestOverscrollPullCancelsRelax(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	o := NewOverscroll(&pullRecorder{}, 100, 0)
	o.ApplyPull(80)
	o.Relax(clk.Now())
	clk.advance(100 * time.Millisecond)
	require.True(t, o.Advance(clk.Now()))

	o.ApplyPull(5)
	require.False(t, o.Relaxing())
	require.False(t, o.Advance(clk.Now()))
	require.Positive(t, o.Pulled())
}

func TestOverscrollShrinkingMaxPull(t *testing.T) {
	t.Parallel()

	rec := &pullRecorder{}
	o := NewOverscroll(rec, 100, 0)
	o.ApplyPull(80)
	o.SetMaxPull(40)
	require.Equal(t, 40, o.Pulled())
	require.Equal(t, 1.0, o.Ratio())
	require.Equal(t, 20, BoundDivisor(0)(40))
	require.Equal(t, 10, BoundDivisor(4)(40))
}
