package notification

import "context"

// Sink receives ledger lifecycle events.
type Sink interface {
	Notify(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Notify(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) error { return nil })

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListByUserID returns newest first.
	ListByUserID(ctx context.Context, userID string) ([]Message, error)
}
