package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"smartblog/internal/models"
)

func TestUserAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "auth-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := s.Create(ctx, email, "correct horse", "Auth Tester", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PasswordHash == "correct horse" {
		t.Fatal("password stored in plaintext")
	}

	user, err := s.Authenticate(ctx, email, "correct horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("id: got %s, want %s", user.ID, created.ID)
	}

	// A wrong password and an unknown user are indistinguishable.
	if _, err := s.Authenticate(ctx, email, "wrong"); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong password: got %v, want ErrNotFound", err)
	}
	if _, err := s.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestUserFindByID(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "findbyid-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := s.Create(ctx, email, "pass12345", "Lookup", models.RoleReader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Email != email {
		t.Errorf("email: got %q, want %q", found.Email, email)
	}

	if _, err := s.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}
