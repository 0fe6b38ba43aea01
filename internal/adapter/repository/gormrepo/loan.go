package gormrepo

import (
	"context"

	loanDomain "bank-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return storageErr("create loan", r.db.WithContext(ctx).Create(l).Error)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return storageErr("save loan", r.db.WithContext(ctx).Save(l).Error)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.get(r.db.WithContext(ctx), loanID)
}

// GetByLoanIDForUpdate issues SELECT ... FOR UPDATE on mysql and postgres.
// sqlite has no row locks and serialises writers on the database instead.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), loanID)
}

func (r *LoanRepository) get(db *gorm.DB, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := db.Where("loan_id = ?", loanID).First(&out).Error; err != nil {
		return nil, findErr("get loan", "loan "+loanID+" not found", err)
	}
	return &out, nil
}

func (r *LoanRepository) ListByUserID(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, storageErr("list loans", err)
}
