package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	domain "roadwatch/internal/domain/road"
	userdomain "roadwatch/internal/domain/user"
	"roadwatch/pkg/datetime"
	"roadwatch/pkg/id"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var reUsername = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

type Usecase struct {
	users    userdomain.Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewUsecase(users userdomain.Repository, secret []byte, tokenTTL time.Duration) *Usecase {
	return &Usecase{users: users, secret: secret, tokenTTL: tokenTTL}
}

type UserDTO struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	CreatedAt datetime.Stamp `json:"created_at"`
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register creates a user. Usernames are [a-zA-Z0-9_]{3,50}; duplicates are
// a conflict.
func (u *Usecase) Register(ctx context.Context, username, password string) (*UserDTO, error) {
	if !reUsername.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 letters, digits or underscores", domain.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	if _, err := u.users.GetByUsername(ctx, username); err == nil {
		return nil, userdomain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usr := &userdomain.User{
		UserID:       id.NewID32(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

// Login verifies credentials and issues a signed access token.
func (u *Usecase) Login(ctx context.Context, username, password string) (string, *UserDTO, error) {
	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, userdomain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !usr.IsActive {
		return "", nil, userdomain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return "", nil, userdomain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: usr.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
		},
	})
	signed, err := tok.SignedString(u.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, toDTO(usr), nil
}

// Authenticate resolves a bearer token to an active user.
func (u *Usecase) Authenticate(ctx context.Context, tokenString string) (*userdomain.User, error) {
	var cl claims
	tok, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, userdomain.ErrInvalidCredentials
	}
	usr, err := u.users.GetByUserID(ctx, cl.Subject)
	if err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}
	if !usr.IsActive {
		return nil, userdomain.ErrInvalidCredentials
	}
	return usr, nil
}

func toDTO(u *userdomain.User) *UserDTO {
	return &UserDTO{ID: u.UserID, Username: u.Username, CreatedAt: datetime.Format(u.CreatedAt)}
}
