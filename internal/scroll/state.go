package scroll

// State is the unified scroll position of a container.
type State struct {
	Offset int
	Bound  int
}

// Listener is notified after every committed offset change.
type Listener interface {
	OnScrollChanged(offset, previous, bound int)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(offset, previous, bound int)

func (f ListenerFunc) OnScrollChanged(offset, previous, bound int) { f(offset, previous, bound) }

type listenerEntry struct {
	id int
	l  Listener
}

// Store holds the offset and bound. Every offset write goes through
// commit, which clamps into [0, bound] and notifies listeners in order.
type Store struct {
	offset    int
	bound     int
	listeners []listenerEntry
	nextID    int
}

// NewStore returns a store at offset 0. A negative bound is treated as 0.
func NewStore(bound int) *Store {
	return &Store{bound: max(bound, 0)}
}

func (s *Store) Offset() int { return s.offset }
func (s *Store) Bound() int  { return s.bound }

func (s *Store) State() State {
	return State{Offset: s.offset, Bound: s.bound}
}

// SetBound updates the maximum offset. The current offset is left alone
// and re-clamped by the next mutation.
func (s *Store) SetBound(bound int) {
	s.bound = max(bound, 0)
}

// AtTop reports whether the header is fully revealed.
func (s *Store) AtTop() bool { return s.offset <= 0 }

// AtBound reports whether the header is fully collapsed.
func (s *Store) AtBound() bool { return s.offset >= s.bound }

// Clamp returns y limited to [0, bound].
func (s *Store) Clamp(y int) int {
	if y < 0 {
		return 0
	}
	if y > s.bound {
		return s.bound
	}
	return y
}

// ScrollTo moves to y (clamped) and reports whether the offset changed.
func (s *Store) ScrollTo(y int) bool {
	return s.commit(y)
}

// ScrollBy moves by dy (clamped) and reports whether the offset changed.
func (s *Store) ScrollBy(dy int) bool {
	return s.commit(s.offset + dy)
}

func (s *Store) commit(target int) bool {
	next := s.Clamp(target)
	if next == s.offset {
		return false
	}
	prev := s.offset
	s.offset = next
	// listeners may remove themselves while being notified
	snapshot := append([]listenerEntry(nil), s.listeners...)
	for _, e := range snapshot {
		e.l.OnScrollChanged(next, prev, s.bound)
	}
	return true
}

// AddListener registers l and returns a func that removes it.
func (s *Store) AddListener(l Listener) (remove func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Save captures the state for persistence.
func (s *Store) Save() SavedState {
	return SavedState{Offset: s.offset, Bound: s.bound}
}
