package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/headerscroll/internal/config"
	"github.com/jask/headerscroll/internal/service"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig() config.Config {
	var cfg config.Config
	cfg.Scroll.AutoMaxScroll = true
	cfg.Scroll.AutoMaxScrollChild = "header"
	cfg.Scroll.CloseUpEasing = "linear"
	cfg.State.Container = "main"
	cfg.UI = config.UIConfig{
		RowUnits:     16,
		FPS:          60,
		HeaderRows:   6,
		Pages:        3,
		PageRows:     120,
		Overscroll:   true,
		TraceSeconds: 10,
	}
	return cfg
}

func newTestApp(t *testing.T, clk *fakeClock, cfg config.Config, states *service.StateService) *App {
	t.Helper()
	a, err := New(context.Background(), Options{
		Config: cfg,
		States: states,
		Clock:  clk.Now,
	})
	require.NoError(t, err)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: 10, Y: 20, Button: button, Action: tea.MouseActionPress}
}

// pointer drives the left mouse button on a shared clock.
type pointer struct {
	a   *App
	clk *fakeClock
	col int
}

func (p pointer) press(row int) {
	p.a.Update(tea.MouseMsg{X: p.col, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func (p pointer) drag(row int, after time.Duration) {
	p.clk.advance(after)
	p.a.Update(tea.MouseMsg{X: p.col, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

func (p pointer) release(row int, after time.Duration) {
	p.clk.advance(after)
	p.a.Update(tea.MouseMsg{X: p.col, Y: row, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

// runFrames delivers frame ticks until the loop stops.
func runFrames(a *App, clk *fakeClock) int {
	n := 0
	for a.frames.active && n < 5000 {
		clk.advance(16 * time.Millisecond)
		a.Update(frameMsg{gen: a.frames.gen, at: clk.Now()})
		n++
	}
	return n
}
