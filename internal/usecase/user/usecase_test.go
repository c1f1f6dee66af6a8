package user

import (
	"context"
	"errors"
	"testing"
	"time"

	roaddomain "roadwatch/internal/domain/road"
	domain "roadwatch/internal/domain/user"
	"roadwatch/internal/testutil/usermock"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	var created *domain.User
	uc := NewUsecase(&usermock.Repo{
		CreateFn: func(ctx context.Context, u *domain.User) error {
			created = u
			return nil
		},
	}, []byte("secret"), time.Hour)

	dto, err := uc.Register(context.Background(), "asha_k", "hunter22")
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if dto.Username != "asha_k" || len(dto.ID) != 32 {
		t.Fatalf("dto: %+v", dto)
	}
	if created.PasswordHash == "hunter22" || created.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if !created.IsActive {
		t.Fatal("new users start active")
	}

	for _, bad := range []string{"ab", "has space", "x@y", ""} {
		if _, err := uc.Register(context.Background(), bad, "hunter22"); !errors.Is(err, roaddomain.ErrValidation) {
			t.Fatalf("username %q: want ErrValidation, got %v", bad, err)
		}
	}
	if _, err := uc.Register(context.Background(), "asha_k", "short"); !errors.Is(err, roaddomain.ErrValidation) {
		t.Fatalf("short password: want ErrValidation, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc := NewUsecase(&usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username}, nil
		},
	}, []byte("secret"), time.Hour)

	if _, err := uc.Register(context.Background(), "asha_k", "hunter22"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	stored := &domain.User{UserID: "u-1", Username: "asha_k", PasswordHash: string(hash), IsActive: true}
	repo := &usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "asha_k" {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByUserIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID == "u-1" {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, []byte("secret"), time.Hour)
	ctx := context.Background()

	token, dto, err := uc.Login(ctx, "asha_k", "hunter22")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if token == "" || dto.Username != "asha_k" {
		t.Fatalf("login result: token=%q dto=%+v", token, dto)
	}

	usr, err := uc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate err: %v", err)
	}
	if usr.Username != "asha_k" {
		t.Fatalf("authenticated user: %+v", usr)
	}

	// Wrong password, unknown user, and garbage tokens all collapse to the
	// same error.
	if _, _, err := uc.Login(ctx, "asha_k", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := uc.Login(ctx, "nobody", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
	if _, err := uc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("garbage token: %v", err)
	}

	// Token signed with a different secret is rejected.
	other := NewUsecase(repo, []byte("other-secret"), time.Hour)
	otherToken, _, err := other.Login(ctx, "asha_k", "hunter22")
	if err != nil {
		t.Fatalf("Login (other secret) err: %v", err)
	}
	if _, err := uc.Authenticate(ctx, otherToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("cross-secret token must fail: %v", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	uc := NewUsecase(&usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{UserID: "u-1", Username: username, PasswordHash: string(hash)}, nil
		},
	}, []byte("secret"), time.Hour)

	if _, _, err := uc.Login(context.Background(), "asha_k", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("inactive user must not log in: %v", err)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	stored := &domain.User{UserID: "u-1", Username: "asha_k", PasswordHash: string(hash), IsActive: true}
	repo := &usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return stored, nil
		},
		GetByUserIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return stored, nil
		},
	}
	uc := NewUsecase(repo, []byte("secret"), -time.Minute)

	token, _, err := uc.Login(context.Background(), "asha_k", "hunter22")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expired token must fail: %v", err)
	}
}
