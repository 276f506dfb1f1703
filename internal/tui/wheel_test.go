package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestWheelCoalescerFoldsBurst(t *testing.T) {
	t.Parallel()

	got := make(chan tea.Msg, 4)
	var c wheelCoalescer
	c.SetSender(func(msg tea.Msg) { got <- msg })

	require.True(t, c.Handle(wheel(tea.MouseButtonWheelDown)))
	require.True(t, c.Handle(wheel(tea.MouseButtonWheelDown)))
	require.True(t, c.Handle(wheel(tea.MouseButtonWheelDown)))
	require.True(t, c.Handle(wheel(tea.MouseButtonWheelUp)))

	select {
	case msg := <-got:
		require.Equal(t, wheelMsg{Delta: 2}, msg)
	case <-time.After(time.Second):
		t.Fatal("no coalesced wheel message")
	}
}

func TestWheelCoalescerDropsCancellingBurst(t *testing.T) {
	t.Parallel()

	got := make(chan tea.Msg, 4)
	var c wheelCoalescer
	c.SetSender(func(msg tea.Msg) { got <- msg })

	c.Handle(wheel(tea.MouseButtonWheelUp))
	c.Handle(wheel(tea.MouseButtonWheelDown))
	time.Sleep(5 * wheelFlushInterval)
	require.Empty(t, got)
}

func TestWheelCoalescerIgnoresOtherInput(t *testing.T) {
	t.Parallel()

	var c wheelCoalescer
	require.False(t, c.Handle(wheel(tea.MouseButtonWheelDown)), "no sender")

	c.SetSender(func(tea.Msg) {})
	require.False(t, c.Handle(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}))
	require.False(t, c.Handle(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionRelease}))
}
