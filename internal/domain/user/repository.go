package user

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by Create when the email unique index rejects the row.
var ErrEmailTaken = errors.New("email already registered")

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
}
