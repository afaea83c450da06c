package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"finpro/internal/store/memory"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	u, err := svc.Register(ctx, "budi", "Budi Santoso", "rahasia1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "budi" || u.Name != "Budi Santoso" {
		t.Fatalf("unexpected user %+v", u)
	}

	got, err := svc.Authenticate(ctx, "budi", "rahasia1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Username != "budi" || got.Name != "Budi Santoso" {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	cases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"empty username", "  ", "rahasia1", ErrEmptyUsername},
		{"short password", "budi", "abc", ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.username, "", tc.password); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	if _, err := svc.Register(ctx, "budi", "Budi", "rahasia1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "budi", "Other", "rahasia2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())
	if _, err := svc.Register(ctx, "budi", "Budi", "rahasia1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown user yield the same error.
	if _, err := svc.Authenticate(ctx, "budi", "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "siapa", "rahasia1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	u := User{Username: "budi", Name: "Budi"}

	tok, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != u {
		t.Fatalf("expected %+v, got %+v", u, got)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	tok, err := other.Issue(User{Username: "budi"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	tok, err := issuer.Issue(User{Username: "budi"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
