package gormrepo

import (
	"context"

	"bank-ledger/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDuplicateKey(err) && violates(err, "email") {
		return user.ErrEmailTaken
	}
	return storageErr("create user", err)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	var out user.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error
	if err != nil {
		return nil, findErr("get user", "user "+userID+" not found", err)
	}
	return &out, nil
}
