package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       string    `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex:ux_users_username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }
