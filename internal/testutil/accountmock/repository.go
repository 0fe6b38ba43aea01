package accountmock

import (
	"context"

	"bank-ledger/internal/domain/account"

	"github.com/shopspring/decimal"
)

var (
	_ account.Repository            = (*Repo)(nil)
	_ account.TransactionRepository = (*TxRepo)(nil)
)

// Repo is a function-backed account.Repository. Unset reads return
// context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn             func(ctx context.Context, a *account.Account) error
	GetByAccountNumberFn func(ctx context.Context, number string) (*account.Account, error)
	GetByUserIDFn        func(ctx context.Context, userID string) (*account.Account, error)
	ListByUserIDFn       func(ctx context.Context, userID string) ([]account.Account, error)
	AdjustBalanceFn      func(ctx context.Context, id uint64, delta decimal.Decimal) (decimal.Decimal, error)
	DeleteFn             func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, a *account.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountNumber(ctx context.Context, number string) (*account.Account, error) {
	if m.GetByAccountNumberFn != nil {
		return m.GetByAccountNumberFn(ctx, number)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*account.Account, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]account.Account, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) AdjustBalance(ctx context.Context, id uint64, delta decimal.Decimal) (decimal.Decimal, error) {
	if m.AdjustBalanceFn != nil {
		return m.AdjustBalanceFn(ctx, id, delta)
	}
	return decimal.Zero, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// TxRepo records appended transactions unless AppendFn overrides it.
type TxRepo struct {
	AppendFn            func(ctx context.Context, t *account.Transaction) error
	ListByUserIDFn      func(ctx context.Context, userID string, limit int) ([]account.Transaction, error)
	DeleteByAccountIDFn func(ctx context.Context, accountID uint64) (int64, error)

	Appended []account.Transaction
}

func (m *TxRepo) Append(ctx context.Context, t *account.Transaction) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, t)
	}
	m.Appended = append(m.Appended, *t)
	return nil
}

func (m *TxRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]account.Transaction, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, limit)
	}
	return nil, context.Canceled
}

func (m *TxRepo) DeleteByAccountID(ctx context.Context, accountID uint64) (int64, error) {
	if m.DeleteByAccountIDFn != nil {
		return m.DeleteByAccountIDFn(ctx, accountID)
	}
	return 0, nil
}
