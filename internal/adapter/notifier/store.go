package notifier

import (
	"context"

	"bank-ledger/internal/domain/notification"
)

// Store keeps events in the messages table so users can read them back.
type Store struct {
	repo notification.MessageRepository
}

func NewStore(repo notification.MessageRepository) *Store { return &Store{repo: repo} }

func (s *Store) Notify(ctx context.Context, ev notification.Event) error {
	return s.repo.Create(ctx, &notification.Message{
		UserID:    ev.UserID,
		Kind:      ev.Kind,
		Text:      ev.Text,
		CreatedAt: ev.CreatedAt,
	})
}
