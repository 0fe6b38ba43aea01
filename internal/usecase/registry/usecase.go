// Package registry opens, finds and closes accounts and registers users.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/domain/uow"
	"bank-ledger/internal/domain/user"
	"bank-ledger/pkg/id"

	"github.com/shopspring/decimal"
)

const DefaultNumberAttempts = 25

type Policy struct {
	// SingleAccountPerUser makes a second CreateAccount for the same user
	// fail with DuplicateAccount.
	SingleAccountPerUser bool
	MaxNumberAttempts    int
}

type Option func(*Usecase)

func WithPolicy(p Policy) Option { return func(u *Usecase) { u.policy = p } }

// WithNumberSource replaces the random account-number generator.
func WithNumberSource(next func() string) Option { return func(u *Usecase) { u.nextNumber = next } }

func WithLogger(l *slog.Logger) Option { return func(u *Usecase) { u.log = l } }

type Usecase struct {
	uow      uow.UnitOfWork
	users    user.Repository
	accounts account.Repository

	policy     Policy
	nextNumber func() string
	log        *slog.Logger
}

func NewUsecase(tx uow.UnitOfWork, users user.Repository, accounts account.Repository, opts ...Option) *Usecase {
	u := &Usecase{
		uow:        tx,
		users:      users,
		accounts:   accounts,
		policy:     Policy{SingleAccountPerUser: true, MaxNumberAttempts: DefaultNumberAttempts},
		nextNumber: id.NewAccountNumber,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(u)
	}
	if u.policy.MaxNumberAttempts <= 0 {
		u.policy.MaxNumberAttempts = DefaultNumberAttempts
	}
	return u
}

type RegisterUserInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Credential string `json:"credential"`
}

// RegisterUser creates the user and opens a savings account in one
// transaction.
func (u *Usecase) RegisterUser(ctx context.Context, in RegisterUserInput) (*user.User, *account.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || !strings.Contains(in.Email, "@") {
		return nil, nil, ledger.InvalidInput("username and a valid email are required")
	}

	usr := &user.User{
		UserID:     id.NewID32(),
		Username:   in.Username,
		Email:      in.Email,
		Credential: in.Credential,
	}
	var acc *account.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Create(ctx, usr); err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				return ledger.InvalidInput("email %s is already registered", in.Email)
			}
			return err
		}
		var err error
		acc, err = u.open(ctx, r, usr.UserID, account.TypeSavings)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	u.log.Info("user registered", "user_id", usr.UserID, "account_number", acc.AccountNumber)
	return usr, acc, nil
}

func (u *Usecase) CreateAccount(ctx context.Context, userID string, typ account.Type) (*account.Account, error) {
	if !id.IsID32(userID) {
		return nil, ledger.InvalidInput("user id must be 32 lowercase hex characters")
	}
	if !typ.Valid() {
		return nil, ledger.InvalidInput("account type must be savings or current, got %q", typ)
	}

	var acc *account.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserID(ctx, userID); err != nil {
			return err
		}
		var err error
		acc, err = u.open(ctx, r, userID, typ)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("account opened", "user_id", userID, "account_number", acc.AccountNumber, "type", typ)
	return acc, nil
}

// open draws account numbers until the store accepts one. Uniqueness is left
// to the store's index; a collision just costs another draw.
func (u *Usecase) open(ctx context.Context, r uow.Repos, userID string, typ account.Type) (*account.Account, error) {
	for attempt := 1; attempt <= u.policy.MaxNumberAttempts; attempt++ {
		a := &account.Account{
			AccountID:     id.NewID32(),
			UserID:        userID,
			AccountNumber: u.nextNumber(),
			Type:          typ,
			Balance:       decimal.Zero,
		}
		if u.policy.SingleAccountPerUser {
			owner := userID
			a.OwnerKey = &owner
		}

		err := r.Accounts.Create(ctx, a)
		if errors.Is(err, account.ErrNumberTaken) {
			u.log.Debug("account number collision", "number", a.AccountNumber, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, ledger.ExhaustedIDSpace("no free account number after %d attempts", u.policy.MaxNumberAttempts)
}

func (u *Usecase) FindAccount(ctx context.Context, ref account.Ref) (*account.Account, error) {
	return account.Resolve(ctx, u.accounts, ref)
}

func (u *Usecase) ListAccounts(ctx context.Context, userID string) ([]account.Account, error) {
	if _, err := u.users.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return u.accounts.ListByUserID(ctx, userID)
}

type Closure struct {
	AccountNumber       string `json:"account_number"`
	UserID              string `json:"user_id"`
	TransactionsRemoved int64  `json:"transactions_removed"`
}

// CloseAccount deletes the account together with its transaction history.
func (u *Usecase) CloseAccount(ctx context.Context, accountNumber string) (*Closure, error) {
	if !id.IsAccountNumber(accountNumber) {
		return nil, ledger.InvalidInput("account number must be 8 digits, got %q", accountNumber)
	}
	var out *Closure
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		n, err := r.Transactions.DeleteByAccountID(ctx, a.ID)
		if err != nil {
			return err
		}
		if err := r.Accounts.Delete(ctx, a.ID); err != nil {
			return err
		}
		out = &Closure{AccountNumber: a.AccountNumber, UserID: a.UserID, TransactionsRemoved: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("account closed", "account_number", accountNumber, "transactions_removed", out.TransactionsRemoved)
	return out, nil
}
