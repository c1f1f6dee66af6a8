package mysql

import (
	"context"
	"errors"
	"testing"

	domain "roadwatch/internal/domain/user"
	infra "roadwatch/internal/infrastructure/db"
	"roadwatch/pkg/id"

	"gorm.io/gorm"
)

func openUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestUserRepository(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{UserID: id.NewID32(), Username: "asha_k", PasswordHash: "x", IsActive: true}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "asha_k")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.UserID != u.UserID || !got.IsActive {
		t.Fatalf("round trip: %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, u.UserID); err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing user: %v", err)
	}

	// Username uniqueness is enforced by the schema.
	dup := &domain.User{UserID: id.NewID32(), Username: "asha_k", PasswordHash: "y", IsActive: true}
	if err := repo.Create(ctx, dup); err == nil {
		t.Fatal("duplicate username must be rejected")
	}
}
