package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

func minimalRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		DisplayName: "สมหญิง",
		Username:    "somying",
		Email:       "somying@example.com",
		Password:    "s3cret-pass",
		Mobile:      "0812345678",
	}
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "test-secret", time.Hour, discardLogger)
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestRegister_NewAccountsAreMembers(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), minimalRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != domain.RoleMember {
		t.Fatalf("role = %q, want member", created.Role)
	}
	if created.ID == "" {
		t.Fatal("id must be assigned")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatal("stored hash must verify against the original password")
	}
	if created.PasswordHash == "s3cret-pass" {
		t.Fatal("password must never be stored in the clear")
	}
}

func TestRegister_MissingRequiredFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	for _, mutate := range []func(*ports.RegisterInput){
		func(in *ports.RegisterInput) { in.Username = "" },
		func(in *ports.RegisterInput) { in.Password = "" },
		func(in *ports.RegisterInput) { in.Email = "" },
	} {
		in := minimalRegisterInput()
		mutate(&in)
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want invalid credentials", err)
		}
	}
}

func TestRegister_BadMobileRejected(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	in := minimalRegisterInput()
	in.Mobile = "12345"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("err = %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, minimalRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, minimalRegisterInput()); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, minimalRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "somying", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("token missing")
	}
	if user == nil || user.Username != "somying" {
		t.Fatalf("user = %+v", user)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()
	if _, err := svc.Register(ctx, minimalRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "somying", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v", err)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	if _, _, err := svc.Login(context.Background(), "nobody", "pass"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestLogin_FrozenAccountBlocked(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, minimalRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repo.SetFrozen(ctx, created.ID, true); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	if _, _, err := svc.Login(ctx, "somying", "s3cret-pass"); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("err = %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v", err)
	}
}
