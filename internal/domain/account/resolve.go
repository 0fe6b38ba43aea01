package account

import (
	"context"

	"bank-ledger/internal/domain/ledger"
	"bank-ledger/pkg/id"
)

// Resolve looks an account up by number, or failing that by owner. Under the
// multi-account policy an owner lookup yields the oldest account.
func Resolve(ctx context.Context, repo Repository, ref Ref) (*Account, error) {
	switch {
	case ref.AccountNumber != "":
		if !id.IsAccountNumber(ref.AccountNumber) {
			return nil, ledger.InvalidInput("account number must be 8 digits, got %q", ref.AccountNumber)
		}
		return repo.GetByAccountNumber(ctx, ref.AccountNumber)
	case ref.UserID != "":
		if !id.IsID32(ref.UserID) {
			return nil, ledger.InvalidInput("user id must be 32 lowercase hex characters")
		}
		return repo.GetByUserID(ctx, ref.UserID)
	}
	return nil, ledger.InvalidInput("account reference needs a user id or an account number")
}
