package usermock

import (
	"context"

	"bank-ledger/internal/domain/user"
)

var _ user.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn      func(ctx context.Context, u *user.User) error
	GetByUserIDFn func(ctx context.Context, userID string) (*user.User, error)
}

func (m *Repo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}
