package recommend

import (
	"context"
	"sync/atomic"
)

// Dispatcher serializes user-triggered recommendation requests. Each
// dispatch bumps a generation counter; a response that arrives after a newer
// dispatch has started is discarded instead of being delivered as fresh.
type Dispatcher struct {
	client *Client
	gen    atomic.Uint64
}

// NewDispatcher creates a dispatcher on top of the given client.
func NewDispatcher(client *Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Dispatch issues the request in a new goroutine and invokes deliver with
// the outcome, unless a newer dispatch superseded this one first.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, deliver func([]Station, error)) {
	gen := d.gen.Add(1)
	go func() {
		stations, err := d.client.Recommend(ctx, req)
		if d.gen.Load() != gen {
			// Stale response, a newer request is in flight or done.
			return
		}
		deliver(stations, err)
	}()
}

// Generation returns the current request generation. Useful for tests and
// debugging.
func (d *Dispatcher) Generation() uint64 {
	return d.gen.Load()
}
