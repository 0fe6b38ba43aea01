package gormrepo

import (
	"context"

	"bank-ledger/internal/domain/notification"

	"gorm.io/gorm"
)

type MessageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) *MessageRepository { return &MessageRepository{db: db} }

func (r *MessageRepository) Create(ctx context.Context, m *notification.Message) error {
	return storageErr("create message", r.db.WithContext(ctx).Create(m).Error)
}

func (r *MessageRepository) ListByUserID(ctx context.Context, userID string) ([]notification.Message, error) {
	var out []notification.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, storageErr("list messages", err)
}
