package account

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Type string

const (
	TypeSavings Type = "savings"
	TypeCurrent Type = "current"
)

func (t Type) Valid() bool { return t == TypeSavings || t == TypeCurrent }

// Table: accounts.
// OwnerKey is the user id when the one-account-per-user policy is on and NULL
// otherwise; its unique index is what enforces the policy.
type Account struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AccountID     string          `gorm:"column:account_id;size:32;not null;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	UserID        string          `gorm:"column:user_id;size:32;not null;index:idx_accounts_user_id" json:"user_id"`
	OwnerKey      *string         `gorm:"column:owner_key;size:32;uniqueIndex:ux_accounts_owner_key" json:"-"`
	AccountNumber string          `gorm:"column:account_number;size:8;not null;uniqueIndex:ux_accounts_account_number" json:"account_number"`
	Type          Type            `gorm:"column:account_type;size:16;not null" json:"account_type"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// AfterFind trims float noise left by drivers without a native decimal type.
func (a *Account) AfterFind(*gorm.DB) error {
	a.Balance = a.Balance.Round(2)
	return nil
}

// Ref addresses an account either by owner or by number. AccountNumber wins
// when both are set.
type Ref struct {
	UserID        string `json:"user_id,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

func (r Ref) IsZero() bool { return r.UserID == "" && r.AccountNumber == "" }

func (r Ref) String() string {
	if r.AccountNumber != "" {
		return "account " + r.AccountNumber
	}
	return "user " + r.UserID
}
