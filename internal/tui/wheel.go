package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const wheelFlushInterval = 16 * time.Millisecond

// wheelMsg carries the notches accumulated over one flush interval,
// positive toward the end of the content.
type wheelMsg struct {
	Delta int
}

// wheelCoalescer folds bursts of wheel events into one message per frame.
type wheelCoalescer struct {
	mu        sync.Mutex
	pending   int
	scheduled bool
	send      func(tea.Msg)
}

func (c *wheelCoalescer) SetSender(send func(tea.Msg)) {
	c.mu.Lock()
	c.send = send
	c.mu.Unlock()
}

// Handle reports whether msg was queued. Without a sender nothing is
// queued and the caller applies the wheel step itself.
func (c *wheelCoalescer) Handle(msg tea.MouseMsg) bool {
	delta, ok := wheelDelta(msg)
	if !ok {
		return false
	}

	c.mu.Lock()
	if c.send == nil {
		c.mu.Unlock()
		return false
	}
	c.pending += delta
	if c.scheduled {
		c.mu.Unlock()
		return true
	}
	c.scheduled = true
	c.mu.Unlock()

	time.AfterFunc(wheelFlushInterval, c.flush)
	return true
}

func (c *wheelCoalescer) flush() {
	c.mu.Lock()
	pending := c.pending
	c.pending = 0
	c.scheduled = false
	send := c.send
	c.mu.Unlock()

	if pending == 0 || send == nil {
		return
	}
	send(wheelMsg{Delta: pending})
}

func wheelDelta(msg tea.MouseMsg) (int, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelDown:
		return 1, true
	default:
		return 0, false
	}
}
