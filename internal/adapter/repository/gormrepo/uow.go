package gormrepo

import (
	"context"
	"time"

	"bank-ledger/internal/domain/loan"
	"bank-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct {
	db      *gorm.DB
	timeout time.Duration
}

type UoWOption func(*GormUoW)

// WithTimeout bounds every transaction; zero leaves only the caller's deadline.
func WithTimeout(d time.Duration) UoWOption {
	return func(u *GormUoW) { u.timeout = d }
}

func NewGormUoW(db *gorm.DB, opts ...UoWOption) *GormUoW {
	u := &GormUoW{db: db}
	for _, o := range opts {
		o(u)
	}
	return u
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: tx},
		Accounts:     &AccountRepository{db: tx},
		Transactions: &TransactionRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
	return storageErr("transaction", err)
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		// lock the loan row up-front so concurrent decisions serialise
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
