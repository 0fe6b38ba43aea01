package user

import "time"

// Table: users. Credential is opaque material handed in by the auth layer.
type User struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID     string    `gorm:"column:user_id;size:32;not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	Username   string    `gorm:"column:username;size:64;not null" json:"username"`
	Email      string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	Credential string    `gorm:"column:credential;type:text" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
