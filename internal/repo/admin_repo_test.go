package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/store"
)

func TestAdminRepo_FindByEmail(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemory()
	docs.Create(ctx, "admins", map[string]any{
		"email":        "ops@example.com",
		"name":         "Ops",
		"passwordHash": "$2a$10$fakehash",
	})
	r := NewAdminRepo(docs, zerolog.Nop())

	a, err := r.FindByEmail(ctx, "ops@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if a.Name != "Ops" || a.PasswordHash != "$2a$10$fakehash" {
		t.Fatalf("admin = %+v", a)
	}

	if _, err := r.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown email: expected ErrNotFound, got %v", err)
	}
}
