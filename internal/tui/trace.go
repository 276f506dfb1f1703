package tui

import (
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
)

const traceHeight = 6

type tracePoint struct {
	at     time.Time
	offset int
}

// offsetTrace keeps the recent offset history for the trace panel.
type offsetTrace struct {
	window time.Duration
	points []tracePoint
	bound  int
}

func newOffsetTrace(seconds int) *offsetTrace {
	if seconds <= 0 {
		seconds = 5
	}
	return &offsetTrace{window: time.Duration(seconds) * time.Second}
}

func (t *offsetTrace) record(now time.Time, offset, bound int) {
	t.bound = bound
	t.points = append(t.points, tracePoint{at: now, offset: offset})
	t.prune(now)
}

func (t *offsetTrace) prune(now time.Time) {
	cutoff := now.Add(-t.window)
	i := 0
	for i < len(t.points)-1 && t.points[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		t.points = append(t.points[:0], t.points[i:]...)
	}
}

func (t *offsetTrace) render(now time.Time, width int) string {
	if width < 10 {
		width = 10
	}
	start := now.Add(-t.window)
	top := float64(max(t.bound, 1))

	chart := tslc.New(width, traceHeight)
	chart.SetXStep(1)
	chart.SetYStep(1)
	chart.SetStyle(traceLineStyle)
	chart.AxisStyle = traceAxisStyle
	chart.LabelStyle = traceLabelStyle
	chart.SetTimeRange(start, now)
	chart.SetViewTimeRange(start, now)
	chart.SetYRange(0, top)
	chart.SetViewYRange(0, top)
	for _, p := range t.points {
		if p.at.Before(start) {
			continue
		}
		chart.Push(tslc.TimePoint{Time: p.at, Value: float64(p.offset)})
	}
	chart.DrawBraille()
	return chart.View()
}
