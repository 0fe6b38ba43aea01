package notifymock

import (
	"context"
	"sync"

	"bank-ledger/internal/domain/notification"
)

var _ notification.Sink = (*Recorder)(nil)

// Recorder keeps every event it is handed. Err, when set, is returned after
// recording.
type Recorder struct {
	mu     sync.Mutex
	events []notification.Event
	Err    error
}

func (r *Recorder) Notify(_ context.Context, ev notification.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

func (r *Recorder) Events() []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Event(nil), r.events...)
}

// Kinds is a shorthand for asserting on event order.
func (r *Recorder) Kinds() []notification.Kind {
	evs := r.Events()
	out := make([]notification.Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}
