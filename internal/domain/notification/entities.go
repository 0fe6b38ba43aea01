package notification

import "time"

type Kind string

const (
	KindLoanApplied  Kind = "loan_applied"
	KindLoanApproved Kind = "loan_approved"
	KindLoanRejected Kind = "loan_rejected"
	KindEMIPaid      Kind = "emi_paid"
	KindLoanClosed   Kind = "loan_closed"
)

// Event is what the ledger core hands to a Sink. Rendering and delivery are
// the sink's business.
type Event struct {
	UserID    string    `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Table: messages
type Message struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"column:user_id;size:32;not null;index:idx_messages_user_created,priority:1" json:"user_id"`
	Kind      Kind      `gorm:"column:kind;size:32;not null" json:"kind"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_messages_user_created,priority:2" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
