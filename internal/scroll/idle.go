package scroll

import "time"

// DefaultConsiderIdle is the quiet period before a close-up runs.
const DefaultConsiderIdle = 100 * time.Millisecond

// IdleTimer is a single-shot deadline. Arming again pushes it back.
type IdleTimer struct {
	delay    time.Duration
	deadline time.Time
	armed    bool
}

func NewIdleTimer(delay time.Duration) *IdleTimer {
	if delay < 0 {
		delay = 0
	}
	return &IdleTimer{delay: delay}
}

func (t *IdleTimer) SetDelay(d time.Duration) {
	if d >= 0 {
		t.delay = d
	}
}

func (t *IdleTimer) Delay() time.Duration { return t.delay }

func (t *IdleTimer) Arm(now time.Time) {
	t.deadline = now.Add(t.delay)
	t.armed = true
}

func (t *IdleTimer) Cancel() { t.armed = false }

func (t *IdleTimer) Armed() bool { return t.armed }

// Deadline reports when the timer fires, if armed.
func (t *IdleTimer) Deadline() (time.Time, bool) {
	return t.deadline, t.armed
}

// Fire disarms and returns true if the deadline has passed.
func (t *IdleTimer) Fire(now time.Time) bool {
	if !t.armed || now.Before(t.deadline) {
		return false
	}
	t.armed = false
	return true
}
