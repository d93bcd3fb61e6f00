package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unlockedcoding/backend/internal/model"
)

func openStoreDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSQLStore_CreateAndResolve(t *testing.T) {
	store := NewSQLStore(openStoreDB(t))
	ctx := context.Background()
	userID := uuid.New()

	token, err := store.Create(ctx, userID, time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars of token, got %d", len(token))
	}

	got, err := store.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user %s, got %s", userID, got)
	}
}

func TestSQLStore_ResolveUnknownTokenIsNotFound(t *testing.T) {
	store := NewSQLStore(openStoreDB(t))

	_, err := store.Resolve(context.Background(), "deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_ExpiredSessionIsNotFound(t *testing.T) {
	db := openStoreDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Resolve(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}

	var count int64
	if err := db.Model(&model.Session{}).Where("token = ?", token).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected expired row to be deleted, found %d", count)
	}
}

func TestSQLStore_DestroyRevokesToken(t *testing.T) {
	store := NewSQLStore(openStoreDB(t))
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := store.Resolve(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after destroy, got %v", err)
	}
}

func TestSQLStore_TokensAreUnique(t *testing.T) {
	store := NewSQLStore(openStoreDB(t))
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, err := store.Create(ctx, uuid.New(), time.Hour)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued")
		}
		seen[token] = true
	}
}
