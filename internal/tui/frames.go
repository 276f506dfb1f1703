package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	gen uint64
	at  time.Time
}

// frameLoop drives animation ticks. Each loop carries a generation so a
// tick from a loop that was stopped and restarted is ignored.
type frameLoop struct {
	gen      uint64
	active   bool
	interval time.Duration
}

func newFrameLoop(fps int) frameLoop {
	f := frameLoop{}
	f.setFPS(fps)
	return f
}

func (f *frameLoop) setFPS(fps int) {
	if fps <= 0 {
		fps = 60
	}
	f.interval = time.Second / time.Duration(fps)
}

// start returns the first tick of a new loop, or nil when one is running.
func (f *frameLoop) start() tea.Cmd {
	if f.active {
		return nil
	}
	f.active = true
	f.gen++
	return f.tick()
}

func (f *frameLoop) tick() tea.Cmd {
	gen := f.gen
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// current reports whether msg belongs to the running loop.
func (f *frameLoop) current(msg frameMsg) bool {
	return f.active && msg.gen == f.gen
}

// stop ends the running loop; its in-flight tick becomes stale.
func (f *frameLoop) stop() {
	f.active = false
	f.gen++
}
