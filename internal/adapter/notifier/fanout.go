package notifier

import (
	"context"

	"bank-ledger/internal/domain/notification"

	"golang.org/x/sync/errgroup"
)

// Fanout delivers to every sink concurrently. All sinks are attempted; the
// first failure is returned.
type Fanout []notification.Sink

func (f Fanout) Notify(ctx context.Context, ev notification.Event) error {
	var g errgroup.Group
	for _, s := range f {
		s := s
		g.Go(func() error { return s.Notify(ctx, ev) })
	}
	return g.Wait()
}
