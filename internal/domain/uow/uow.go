package uow

import (
	"context"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/loan"
	"bank-ledger/internal/domain/user"
)

// Repos are bound to one database transaction for the duration of a callback.
type Repos struct {
	Users        user.Repository
	Accounts     account.Repository
	Transactions account.TransactionRepository
	Loans        loan.Repository
}

type UnitOfWork interface {
	// plain tx: fn's error rolls everything back
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
