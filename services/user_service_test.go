package services

import (
	"errors"
	"testing"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Register(RegisterInput{
		Email:    "  Guest@Example.COM ",
		Password: "s3cret-pass",
		FullName: " Test Guest ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "guest@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.HashedPassword == "s3cret-pass" {
		t.Error("password must not be stored in plain text")
	}
	if !utils.VerifyPassword(user.HashedPassword, "s3cret-pass") {
		t.Error("stored hash should verify against the original password")
	}

	authed, err := svc.Authenticate("guest@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("authenticated id = %d, want %d", authed.ID, user.ID)
	}

	if _, err := svc.Authenticate("guest@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password err = %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown email err = %v, want ErrBadCredentials", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	in := RegisterInput{Email: "guest@example.com", Password: "s3cret-pass", FullName: "Test Guest"}
	if _, err := svc.Register(in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}

	// Same address with different case is still taken.
	in.Email = "GUEST@example.com"
	if _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("case-variant register err = %v, want ErrEmailTaken", err)
	}
}

func TestGetByID(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Register(RegisterInput{Email: "guest@example.com", Password: "s3cret-pass", FullName: "Test Guest"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("email = %q, want %q", got.Email, user.Email)
	}

	if _, err := svc.GetByID(user.ID + 99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown id err = %v, want ErrUserNotFound", err)
	}
}
