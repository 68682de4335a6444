package service

import (
	"context"
	"errors"
	"testing"

	"gamebase/backend/internal/dbtest"
	"gamebase/backend/internal/models"
)

func TestUsers_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	u := NewUsers(dbtest.New(t))

	user, err := u.Register(ctx, RegisterInput{Email: " Alice@Example.com ", Nickname: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" || user.Role != models.RoleUser {
		t.Errorf("registered user = %q role %q", user.Email, user.Role)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in clear text")
	}

	got, err := u.Authenticate(ctx, "ALICE@example.com", "correct horse")
	if err != nil || got.ID != user.ID {
		t.Fatalf("Authenticate: %v, %v", got, err)
	}

	if _, err := u.Authenticate(ctx, "alice@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v, want ErrInvalidCredentials", err)
	}
	if _, err := u.Authenticate(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: %v, want ErrInvalidCredentials", err)
	}
}

func TestUsers_RegisterConflictsAndValidation(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	u := NewUsers(db)
	dbtest.User(t, db, "bob", models.RoleUser)

	if _, err := u.Register(ctx, RegisterInput{Email: "bob@example.com", Nickname: "bobby", Password: "password123"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email: %v, want ErrConflict", err)
	}
	if _, err := u.Register(ctx, RegisterInput{Email: "other@example.com", Nickname: "bob", Password: "password123"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate nickname: %v, want ErrConflict", err)
	}

	_, err := u.Register(ctx, RegisterInput{Email: "not-an-email", Nickname: "x", Password: "short"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	for _, field := range []string{"email", "password"} {
		if verr.Fields[field] == "" {
			t.Errorf("missing message for %s in %v", field, verr.Fields)
		}
	}

	if _, err := u.Get(ctx, 4242); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown: %v, want ErrNotFound", err)
	}
}
