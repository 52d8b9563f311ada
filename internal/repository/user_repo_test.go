package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"finance_tracker/internal/domain"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	u := &domain.User{Username: "first", Email: email, PasswordHash: "x"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", u.ID)
	})

	dup := &domain.User{Username: "second", Email: email, PasswordHash: "y"}
	if err := users.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail got %v", err)
	}
}

func TestGetByIDOmitsHash(t *testing.T) {
	pool := newTestPool(t)
	user := createTestUser(t, pool)
	users := NewUserRepository(pool)

	got, err := users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatal("GetByID must not load the password hash")
	}
	if got.DarkMode {
		t.Fatal("dark mode should default to false")
	}
}

func TestUpdatePreferences(t *testing.T) {
	pool := newTestPool(t)
	user := createTestUser(t, pool)
	users := NewUserRepository(pool)
	ctx := context.Background()

	dark := true
	got, err := users.UpdatePreferences(ctx, user.ID, &dark)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.DarkMode {
		t.Fatal("dark mode not applied")
	}

	// nil patch leaves the record untouched and still returns it
	got, err = users.UpdatePreferences(ctx, user.ID, nil)
	if err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if !got.DarkMode {
		t.Fatal("noop update changed dark mode")
	}
}

func TestUpdatePreferencesMissingUser(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)

	dark := true
	if _, err := users.UpdatePreferences(context.Background(), -1, &dark); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
