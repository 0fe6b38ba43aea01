// Package loan runs the loan lifecycle: quote, apply, approve or reject, and
// EMI repayment until the loan closes.
package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/domain/loan"
	"bank-ledger/internal/domain/notification"
	"bank-ledger/internal/domain/uow"
	"bank-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

const MaxMonths = 600

var maxRate = decimal.NewFromInt(100)

type Option func(*Usecase)

func WithSink(s notification.Sink) Option { return func(u *Usecase) { u.sink = s } }

func WithLogger(l *slog.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

type Usecase struct {
	uow   uow.UnitOfWork
	loans loan.Repository
	sink  notification.Sink
	log   *slog.Logger
	now   func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, loans loan.Repository, opts ...Option) *Usecase {
	u := &Usecase{
		uow:   tx,
		loans: loans,
		sink:  notification.Discard,
		log:   slog.Default(),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func validateTerms(principal, rate decimal.Decimal, months int) error {
	switch {
	case principal.Sign() <= 0 || !principal.Equal(principal.Round(2)):
		return ledger.InvalidInput("amount must be positive with at most two decimals, got %s", principal)
	case principal.GreaterThanOrEqual(ledger.MaxAmount):
		return ledger.InvalidInput("amount %s exceeds the loan limit", principal)
	case rate.IsNegative() || rate.GreaterThan(maxRate):
		return ledger.InvalidInput("annual rate must be within 0..100, got %s", rate)
	case months < 1 || months > MaxMonths:
		return ledger.InvalidInput("months must be within 1..%d, got %d", MaxMonths, months)
	}
	return nil
}

func (u *Usecase) Quote(principal, rate decimal.Decimal, months int) (*Quote, error) {
	if err := validateTerms(principal, rate, months); err != nil {
		return nil, err
	}
	emi, err := loan.EMI(principal, rate, months)
	if err != nil {
		return nil, ledger.InvalidInput("%s", err.Error())
	}
	total := emi.Mul(decimal.NewFromInt(int64(months)))
	return &Quote{
		Principal:     principal,
		AnnualRate:    rate,
		Months:        months,
		EMI:           emi,
		TotalPayable:  total,
		TotalInterest: total.Sub(principal),
	}, nil
}

// Apply files a pending loan. The applicant must already hold an account.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*loan.Loan, error) {
	if !id.IsID32(in.UserID) {
		return nil, ledger.InvalidInput("user id must be 32 lowercase hex characters")
	}
	q, err := u.Quote(in.Principal, in.AnnualRate, in.Months)
	if err != nil {
		return nil, err
	}

	now := u.now()
	l := &loan.Loan{
		LoanID:          id.NewID32(),
		UserID:          in.UserID,
		Principal:       q.Principal,
		APR:             q.AnnualRate,
		Months:          q.Months,
		EMI:             q.EMI,
		Status:          loan.StatusPending,
		StatusUpdatedAt: now,
		CreatedAt:       now,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Accounts.GetByUserID(ctx, in.UserID); err != nil {
			if ledger.KindOf(err) == ledger.KindNotFound {
				return ledger.NotFound("user %s has no account; open one before applying", in.UserID)
			}
			return err
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan applied", "loan_id", l.LoanID, "user_id", l.UserID, "principal", l.Principal.StringFixed(2), "emi", l.EMI.StringFixed(2))
	u.notify(ctx, l.UserID, notification.KindLoanApplied,
		fmt.Sprintf("Loan request submitted. EMI ≈ %s", l.EMI.StringFixed(2)))
	return l, nil
}

func (u *Usecase) Approve(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.decide(ctx, loanID, loan.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.decide(ctx, loanID, loan.StatusRejected)
}

func (u *Usecase) decide(ctx context.Context, loanID string, next loan.Status) (*loan.Loan, error) {
	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.CanTransitionTo(next) {
			return ledger.InvalidState("loan %s is %s, only pending loans can be %s", l.LoanID, l.Status, next)
		}
		now := u.now()
		l.Status = next
		l.StatusUpdatedAt = now
		if next == loan.StatusApproved {
			l.ApprovedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan decided", "loan_id", out.LoanID, "status", out.Status)
	if next == loan.StatusApproved {
		u.notify(ctx, out.UserID, notification.KindLoanApproved, "Your loan is approved ✅")
	} else {
		u.notify(ctx, out.UserID, notification.KindLoanRejected, "Your loan is rejected ❌")
	}
	return out, nil
}

// PayEMI records one installment. The amount is logged but not matched
// against the EMI, and no account is debited.
func (u *Usecase) PayEMI(ctx context.Context, in PayEMIInput) (*loan.Loan, error) {
	if in.Amount.Sign() <= 0 {
		return nil, ledger.InvalidInput("amount must be positive, got %s", in.Amount)
	}

	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.UserID != in.UserID {
			// don't reveal other users' loans
			return ledger.NotFound("loan %s not found", in.LoanID)
		}
		if l.Status != loan.StatusApproved {
			return ledger.InvalidState("loan %s is %s, not approved", l.LoanID, l.Status)
		}
		if l.EmisPaid >= l.Months {
			return ledger.InvariantViolation("loan %s is approved with all %d EMIs paid", l.LoanID, l.Months)
		}
		l.EmisPaid++
		if l.EmisPaid == l.Months {
			l.Status = loan.StatusClosed
			l.StatusUpdatedAt = u.now()
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("emi paid", "loan_id", out.LoanID, "amount", in.Amount.StringFixed(2), "emi", out.EMI.StringFixed(2),
		"emis_paid", out.EmisPaid, "months", out.Months)
	if out.Status == loan.StatusClosed {
		u.notify(ctx, out.UserID, notification.KindLoanClosed, "All EMIs paid. No Dues ✅")
	} else {
		u.notify(ctx, out.UserID, notification.KindEMIPaid,
			fmt.Sprintf("EMI received: %s. EMIs paid: %d/%d", in.Amount.StringFixed(2), out.EmisPaid, out.Months))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.loans.GetByLoanID(ctx, loanID)
}

// ListByUser returns the user's loans, newest first.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]loan.Loan, error) {
	if !id.IsID32(userID) {
		return nil, ledger.InvalidInput("user id must be 32 lowercase hex characters")
	}
	return u.loans.ListByUserID(ctx, userID)
}

// notify runs after commit; delivery problems are logged, never returned.
func (u *Usecase) notify(ctx context.Context, userID string, kind notification.Kind, text string) {
	ev := notification.Event{UserID: userID, Kind: kind, Text: text, CreatedAt: u.now()}
	if err := u.sink.Notify(ctx, ev); err != nil {
		u.log.Warn("notification not delivered", "user_id", userID, "kind", kind, "err", err)
	}
}
