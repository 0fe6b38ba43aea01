package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
)

// CanTransitionTo encodes the lifecycle: pending -> approved|rejected,
// approved -> closed. Everything else, including self-transitions, is refused.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusClosed
	}
	return false
}

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"column:loan_id;size:32;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID          string          `gorm:"column:user_id;size:32;not null;index:idx_loans_user_id" json:"user_id"`
	Principal       decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	APR             decimal.Decimal `gorm:"column:apr;type:decimal(7,4);not null" json:"annual_rate"`
	Months          int             `gorm:"column:months;not null" json:"months"`
	EMI             decimal.Decimal `gorm:"column:emi;type:decimal(18,2);not null" json:"emi"`
	Status          Status          `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	EmisPaid        int             `gorm:"column:emis_paid;not null;default:0" json:"emis_paid"`
	StatusUpdatedAt time.Time       `gorm:"column:status_updated_at" json:"status_updated_at"`
	ApprovedAt      *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) AfterFind(*gorm.DB) error {
	l.Principal = l.Principal.Round(2)
	l.EMI = l.EMI.Round(2)
	l.APR = l.APR.Round(4)
	return nil
}

// Remaining is the number of installments still owed.
func (l *Loan) Remaining() int { return l.Months - l.EmisPaid }
