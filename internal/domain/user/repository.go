package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
}
