package surface

import "sync"

type EventKind int

const (
	EventNone EventKind = iota
	EventConfigure
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventConfigure:
		return "configure"
	case EventClosed:
		return "closed"
	}
	return "unknown"
}

// Event is something that the compositor told a layer surface.
type Event struct {
	Kind          EventKind
	Width, Height uint32
}

// Cell holds at most one pending Event. A newer event replaces an
// older one, except that once EventClosed has been recorded nothing
// replaces it, not even after it has been taken.
type Cell struct {
	m      sync.Mutex
	ev     Event
	closed bool
}

// Record stores ev, replacing the pending event. It returns false if
// the cell has been closed, in which case ev is dropped.
func (c *Cell) Record(ev Event) bool {
	c.m.Lock()
	defer c.m.Unlock()

	if c.closed {
		return false
	}

	c.ev = ev
	c.closed = ev.Kind == EventClosed
	return true
}

// Take returns and clears the pending event. If nothing is pending, the
// returned event's Kind is EventNone. A closed cell keeps returning
// EventClosed.
func (c *Cell) Take() Event {
	c.m.Lock()
	defer c.m.Unlock()

	ev := c.ev
	if !c.closed {
		c.ev = Event{}
	}
	return ev
}

// Closed reports whether EventClosed has been recorded.
func (c *Cell) Closed() bool {
	c.m.Lock()
	defer c.m.Unlock()

	return c.closed
}
