package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"reportvault/internal/auth"
	"reportvault/internal/store"
)

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "auth-test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return NewAuthService(st, auth.NewDenylist().Contains, ttl)
}

func TestAuthServiceSessionLifecycle(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := svc.Register(ctx, "alice@example.com", "Str0ng!Pass", now); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, "alice@example.com", "Str0ng!Pass", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected session token")
	}
	if !result.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", result.ExpiresAt)
	}

	account, err := svc.Authenticate(ctx, result.Token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("unexpected account: %q", account.Email)
	}

	if err := svc.Logout(ctx, result.Token, now.Add(2*time.Minute)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.Token, now.Add(3*time.Minute)); err == nil {
		t.Fatal("expected authentication to fail after logout")
	}
	if err := svc.Logout(ctx, result.Token, now.Add(4*time.Minute)); err == nil {
		t.Fatal("expected repeated logout to fail")
	}
}

func TestAuthServiceExpiredSession(t *testing.T) {
	svc := newTestAuthService(t, time.Minute)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := svc.Register(ctx, "alice@example.com", "Str0ng!Pass", now); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(ctx, "alice@example.com", "Str0ng!Pass", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Authenticate(ctx, result.Token, now.Add(30*time.Second)); err != nil {
		t.Fatalf("authenticate before expiry: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.Token, now.Add(2*time.Minute)); err == nil {
		t.Fatal("expected authentication to fail after expiry")
	}
}

func TestAuthServiceUniformLoginErrors(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := svc.Register(ctx, "alice@example.com", "Str0ng!Pass", now); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "Str0ng!Pass", now)
	_, wrongErr := svc.Login(ctx, "alice@example.com", "WrongPass1!", now)
	if unknownErr == nil || wrongErr == nil {
		t.Fatal("expected both logins to fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("unknown-email error %q differs from wrong-password error %q",
			unknownErr, wrongErr)
	}
}

func TestAuthServiceTokensAreSingleUseIdentifiers(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := svc.Register(ctx, "alice@example.com", "Str0ng!Pass", now); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := svc.Login(ctx, "alice@example.com", "Str0ng!Pass", now)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(ctx, "alice@example.com", "Str0ng!Pass", now)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("expected distinct tokens per login")
	}

	// Revoking one session leaves the other valid.
	if err := svc.Logout(ctx, first.Token, now); err != nil {
		t.Fatalf("logout first: %v", err)
	}
	if _, err := svc.Authenticate(ctx, second.Token, now); err != nil {
		t.Fatalf("second session should survive: %v", err)
	}
}
