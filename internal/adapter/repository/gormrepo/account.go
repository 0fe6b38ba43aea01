package gormrepo

import (
	"context"

	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newBalance keeps the bound parameter exact (mysql would otherwise coerce a
// string operand to DOUBLE) and rounds the sum to cents. sqlite stores
// DECIMAL columns as REAL, so without ROUND float drift accumulates in the row
// and leaks into the non-negative guard.
const newBalance = "ROUND(balance + CAST(? AS DECIMAL(18,2)), 2)"

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

// Create runs the insert under its own savepoint so a unique-index miss does
// not poison an enclosing transaction (postgres aborts the whole tx otherwise).
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(a).Error
	})
	switch {
	case err == nil:
		return nil
	case isDuplicateKey(err) && violates(err, "owner_key"):
		return ledger.DuplicateAccount("user %s already has an account", a.UserID)
	case isDuplicateKey(err) && violates(err, "account_number"):
		a.ID = 0
		return account.ErrNumberTaken
	}
	return storageErr("create account", err)
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, number string) (*account.Account, error) {
	var out account.Account
	err := r.db.WithContext(ctx).Where("account_number = ?", number).First(&out).Error
	if err != nil {
		return nil, findErr("get account", "account "+number+" not found", err)
	}
	return &out, nil
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*account.Account, error) {
	var out account.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&out).Error
	if err != nil {
		return nil, findErr("get account", "no account for user "+userID, err)
	}
	return &out, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string) ([]account.Account, error) {
	var out []account.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	return out, storageErr("list accounts", err)
}

// AdjustBalance is a single conditional UPDATE: concurrent callers serialise on
// the row and the WHERE clause refuses any result below zero.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uint64, delta decimal.Decimal) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx)

	res := db.Model(&account.Account{}).
		Where("id = ? AND "+newBalance+" >= 0", id, delta).
		Update("balance", gorm.Expr(newBalance, delta))
	if res.Error != nil {
		return decimal.Zero, storageErr("adjust balance", res.Error)
	}

	if res.RowsAffected == 0 {
		var n int64
		if err := db.Model(&account.Account{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return decimal.Zero, storageErr("adjust balance", err)
		}
		if n == 0 {
			return decimal.Zero, ledger.NotFound("account not found")
		}
		return decimal.Zero, ledger.InsufficientFunds("insufficient balance for %s", delta.Neg().StringFixed(2))
	}

	var out account.Account
	if err := db.Select("id", "balance").Where("id = ?", id).Take(&out).Error; err != nil {
		return decimal.Zero, storageErr("read balance", err)
	}
	if out.Balance.Sign() < 0 {
		return decimal.Zero, ledger.InvariantViolation("account %d balance went negative: %s", id, out.Balance)
	}
	return out.Balance, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&account.Account{}, id)
	if res.Error != nil {
		return storageErr("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.NotFound("account not found")
	}
	return nil
}
