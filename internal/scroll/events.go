package scroll

import "time"

// Action is the phase of a touch event.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchEvent is one sample of the pointer stream, in container units.
type TouchEvent struct {
	Action Action
	X, Y   float64
	Time   time.Time
}

// WithAction returns a copy of the event carrying a different action.
// Synthetic cancel and down events are built this way so the original
// event is never mutated.
func (ev TouchEvent) WithAction(a Action) TouchEvent {
	ev.Action = a
	return ev
}

// Dispatcher delivers events the container did not claim to its descendants.
type Dispatcher interface {
	Dispatch(ev TouchEvent)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ev TouchEvent)

func (f DispatcherFunc) Dispatch(ev TouchEvent) { f(ev) }

// Rect is an axis-aligned rectangle. Max edges are exclusive.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Region is a sub-area allowed to start container drags even while it
// overlays nested content (a tab strip, typically).
type Region interface {
	// Bounds writes the currently visible rectangle into dst and reports
	// whether the region is visible at all.
	Bounds(dst *Rect) bool
}

// Direction is the sign of an offset change.
type Direction int

const (
	// Reveal moves toward offset 0, exposing more of the header.
	Reveal Direction = -1
	// Collapse moves toward the bound, hiding the header.
	Collapse Direction = 1
)

func directionOf(delta int) Direction {
	if delta < 0 {
		return Reveal
	}
	return Collapse
}

func (d Direction) String() string {
	if d == Reveal {
		return "reveal"
	}
	return "collapse"
}
