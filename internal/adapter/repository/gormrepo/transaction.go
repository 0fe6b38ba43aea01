package gormrepo

import (
	"context"

	"bank-ledger/internal/domain/account"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Append(ctx context.Context, t *account.Transaction) error {
	return storageErr("append transaction", r.db.WithContext(ctx).Create(t).Error)
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]account.Transaction, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []account.Transaction
	return out, storageErr("list transactions", q.Find(&out).Error)
}

func (r *TransactionRepository) DeleteByAccountID(ctx context.Context, accountID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&account.Transaction{})
	return res.RowsAffected, storageErr("delete transactions", res.Error)
}
