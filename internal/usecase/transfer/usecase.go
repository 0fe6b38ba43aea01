// Package transfer moves money: deposits, withdrawals and account-to-account
// transfers, each recorded in the transaction log.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/domain/uow"
	"bank-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 1000
)

type Option func(*Usecase)

func WithLogger(l *slog.Logger) Option { return func(u *Usecase) { u.log = l } }

// WithClock overrides the timestamp source for log entries.
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

type Usecase struct {
	uow uow.UnitOfWork
	txs account.TransactionRepository
	log *slog.Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, txs account.TransactionRepository, opts ...Option) *Usecase {
	u := &Usecase{
		uow: tx,
		txs: txs,
		log: slog.Default(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// ValidateAmount accepts strictly positive amounts with at most two decimals.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case amount.Sign() <= 0:
		return ledger.InvalidInput("amount must be positive, got %s", amount)
	case !amount.Equal(amount.Round(2)):
		return ledger.InvalidInput("amount must have at most two decimal places, got %s", amount)
	case amount.GreaterThanOrEqual(ledger.MaxAmount):
		return ledger.InvalidInput("amount %s exceeds the per-transaction limit", amount)
	}
	return nil
}

func (u *Usecase) Deposit(ctx context.Context, ref account.Ref, amount decimal.Decimal) (*account.Transaction, error) {
	return u.single(ctx, ref, amount, account.TxDeposit)
}

func (u *Usecase) Withdraw(ctx context.Context, ref account.Ref, amount decimal.Decimal) (*account.Transaction, error) {
	return u.single(ctx, ref, amount, account.TxWithdraw)
}

func (u *Usecase) single(ctx context.Context, ref account.Ref, amount decimal.Decimal, typ account.TxType) (*account.Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	delta := amount
	if typ == account.TxWithdraw {
		delta = amount.Neg()
	}

	var rec *account.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := account.Resolve(ctx, r.Accounts, ref)
		if err != nil {
			return err
		}
		bal, err := r.Accounts.AdjustBalance(ctx, a.ID, delta)
		if err != nil {
			return err
		}
		rec = u.entry(a, typ, amount, bal, nil)
		return r.Transactions.Append(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info(string(typ), "user_id", rec.UserID, "amount", amount.StringFixed(2), "balance", rec.BalanceAfter.StringFixed(2))
	return rec, nil
}

// Result carries both legs of a transfer.
type Result struct {
	Out account.Transaction `json:"out"`
	In  account.Transaction `json:"in"`
}

// Transfer debits from and credits to in one transaction. Balances are
// adjusted in ascending account id order so two opposing transfers never wait
// on each other's row locks.
func (u *Usecase) Transfer(ctx context.Context, from, to account.Ref, amount decimal.Decimal) (*Result, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	var res *Result
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		src, err := account.Resolve(ctx, r.Accounts, from)
		if err != nil {
			return err
		}
		dst, err := account.Resolve(ctx, r.Accounts, to)
		if err != nil {
			return err
		}
		if src.ID == dst.ID {
			return ledger.InvalidTransfer("cannot transfer from account %s to itself", src.AccountNumber)
		}

		legs := []struct {
			acc   *account.Account
			delta decimal.Decimal
			bal   decimal.Decimal
		}{{acc: src, delta: amount.Neg()}, {acc: dst, delta: amount}}
		if dst.ID < src.ID {
			legs[0], legs[1] = legs[1], legs[0]
		}
		for i := range legs {
			bal, err := r.Accounts.AdjustBalance(ctx, legs[i].acc.ID, legs[i].delta)
			if err != nil {
				return err
			}
			legs[i].bal = bal
		}
		srcBal, dstBal := legs[0].bal, legs[1].bal
		if legs[0].acc != src {
			srcBal, dstBal = dstBal, srcBal
		}

		out := u.entry(src, account.TxTransferOut, amount, srcBal, &dst.UserID)
		in := u.entry(dst, account.TxTransferIn, amount, dstBal, &src.UserID)
		if err := r.Transactions.Append(ctx, out); err != nil {
			return err
		}
		if err := r.Transactions.Append(ctx, in); err != nil {
			return err
		}
		res = &Result{Out: *out, In: *in}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("transfer", "from_user", res.Out.UserID, "to_user", res.In.UserID, "amount", amount.StringFixed(2))
	return res, nil
}

func (u *Usecase) entry(a *account.Account, typ account.TxType, amount, bal decimal.Decimal, counterparty *string) *account.Transaction {
	var cp *string
	if counterparty != nil {
		v := *counterparty
		cp = &v
	}
	return &account.Transaction{
		TxID:               id.NewID32(),
		AccountID:          a.ID,
		UserID:             a.UserID,
		Type:               typ,
		Amount:             amount,
		BalanceAfter:       bal,
		CounterpartyUserID: cp,
		Timestamp:          u.now(),
	}
}

// History returns the user's transactions, newest first.
func (u *Usecase) History(ctx context.Context, userID string, limit int) ([]account.Transaction, error) {
	if !id.IsID32(userID) {
		return nil, ledger.InvalidInput("user id must be 32 lowercase hex characters")
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return u.txs.ListByUserID(ctx, userID, limit)
}
