package account

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TxType string

const (
	TxDeposit     TxType = "deposit"
	TxWithdraw    TxType = "withdraw"
	TxTransferIn  TxType = "transfer_in"
	TxTransferOut TxType = "transfer_out"
)

// Table: transactions. Rows are append-only; they go away only with their account.
type Transaction struct {
	ID                 uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TxID               string          `gorm:"column:tx_id;size:32;not null;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	AccountID          uint64          `gorm:"column:account_id;not null;index:idx_transactions_account_id" json:"-"`
	UserID             string          `gorm:"column:user_id;size:32;not null;index:idx_transactions_user_ts,priority:1" json:"user_id"`
	Type               TxType          `gorm:"column:type;size:16;not null" json:"type"`
	Amount             decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	BalanceAfter       decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	CounterpartyUserID *string         `gorm:"column:counterparty_user_id;size:32" json:"counterparty_user_id,omitempty"`
	Timestamp          time.Time       `gorm:"column:timestamp;not null;index:idx_transactions_user_ts,priority:2" json:"timestamp"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) AfterFind(*gorm.DB) error {
	t.Amount = t.Amount.Round(2)
	t.BalanceAfter = t.BalanceAfter.Round(2)
	return nil
}
