// Package location tracks the current device position. Updates arrive
// asynchronously over time; only the latest position matters downstream, so
// the tracker keeps a single last-write-wins cell and pushes updates to
// subscribers with the same semantics.
package location

import (
	"sync"
	"time"
)

// Position is a timestamped WGS84 fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// Tracker holds the most recent position and fans updates out to
// subscribers. Subscriber channels buffer a single position; a newer update
// replaces an undelivered one rather than queueing behind it.
type Tracker struct {
	mu      sync.RWMutex
	current *Position
	subs    map[int]chan Position
	nextID  int
}

// NewTracker creates a tracker with no position fix yet.
func NewTracker() *Tracker {
	return &Tracker{
		subs: make(map[int]chan Position),
	}
}

// Publish records a new position and notifies subscribers. A zero timestamp
// is filled with the current time.
func (t *Tracker) Publish(p Position) {
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = &p
	for _, ch := range t.subs {
		// Drop the undelivered position, if any, then send the new one.
		select {
		case <-ch:
		default:
		}
		ch <- p
	}
}

// Latest returns the most recent position, or false when no fix exists yet.
func (t *Tracker) Latest() (Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.current == nil {
		return Position{}, false
	}
	return *t.current, true
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. The current position, when known, is delivered immediately.
func (t *Tracker) Subscribe() (<-chan Position, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++

	ch := make(chan Position, 1)
	t.subs[id] = ch
	if t.current != nil {
		ch <- *t.current
	}

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subs[id]; ok {
			close(sub)
			delete(t.subs, id)
		}
	}

	return ch, cancel
}

// SubscriberCount returns the number of active subscribers.
func (t *Tracker) SubscriberCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.subs)
}
