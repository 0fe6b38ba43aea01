package account

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNumberTaken is returned by Create when the account number collides with an
// existing row. Callers draw a new number and retry.
var ErrNumberTaken = errors.New("account number already taken")

type Repository interface {
	// Create inserts a; a unique-index hit on owner_key surfaces as a
	// ledger DuplicateAccount, on account_number as ErrNumberTaken.
	Create(ctx context.Context, a *Account) error
	GetByAccountNumber(ctx context.Context, number string) (*Account, error)
	// GetByUserID returns the user's oldest account.
	GetByUserID(ctx context.Context, userID string) (*Account, error)
	ListByUserID(ctx context.Context, userID string) ([]Account, error)

	// AdjustBalance atomically applies delta and returns the new balance. It
	// never lets the balance drop below zero.
	AdjustBalance(ctx context.Context, id uint64, delta decimal.Decimal) (decimal.Decimal, error)
	Delete(ctx context.Context, id uint64) error
}

type TransactionRepository interface {
	Append(ctx context.Context, t *Transaction) error
	// ListByUserID returns newest first; limit <= 0 means no limit.
	ListByUserID(ctx context.Context, userID string, limit int) ([]Transaction, error)
	DeleteByAccountID(ctx context.Context, accountID uint64) (int64, error)
}
