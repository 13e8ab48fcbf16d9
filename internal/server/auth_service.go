package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	internalauth "reportvault/internal/auth"
	"reportvault/internal/models"
	"reportvault/internal/store"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService encapsulates registration, login, and session lifecycle
// backed by the store.
type AuthService struct {
	store      *store.Store
	rejected   internalauth.RejectedPasswordFunc
	sessionTTL time.Duration
}

type loginResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

// NewAuthService creates an AuthService. rejected is the pluggable
// compromised-password predicate applied at registration.
func NewAuthService(st *store.Store, rejected internalauth.RejectedPasswordFunc, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{store: st, rejected: rejected, sessionTTL: sessionTTL}
}

// Register validates credentials and creates an account. Email shape
// failures, password policy failures, and duplicate emails surface as
// distinct errors; the handler maps each to its own status.
func (a *AuthService) Register(ctx context.Context, email, password string, now time.Time) (*models.Account, error) {
	normalized, err := internalauth.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidEmail, err)
	}
	if err := internalauth.CheckPassword(password, normalized, a.rejected); err != nil {
		return nil, err
	}

	hash, err := internalauth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.store.CreateAccount(ctx, normalized, hash, now)
}

// Login verifies credentials and issues a session. An unknown email and
// a wrong password return the identical error so the API never reveals
// whether an email is registered. Credential values are opaque data all
// the way down: they reach the store only as bound SQL parameters, so
// injection-shaped input simply fails to match.
func (a *AuthService) Login(ctx context.Context, email, password string, now time.Time) (*loginResult, error) {
	account, err := a.store.GetAccountByEmail(ctx, internalauth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account == nil || !internalauth.VerifyPassword(account.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(a.sessionTTL)
	if _, err := a.store.CreateSession(ctx, account.ID, hashSessionToken(token), now, expiresAt); err != nil {
		return nil, err
	}

	return &loginResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a session token to its owning account. Unknown,
// revoked, and expired tokens all fail the same way.
func (a *AuthService) Authenticate(ctx context.Context, token string, now time.Time) (*models.Account, error) {
	if token == "" {
		return nil, errNotAuthenticated
	}
	account, err := a.store.GetAccountBySessionTokenHash(ctx, hashSessionToken(token), now)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errNotAuthenticated
	}
	return account, nil
}

// Logout revokes the session behind a token. Revoking an unknown or
// already-revoked token fails with an authentication error rather than
// silently succeeding.
func (a *AuthService) Logout(ctx context.Context, token string, now time.Time) error {
	if token == "" {
		return errNotAuthenticated
	}
	revoked, err := a.store.RevokeSessionByTokenHash(ctx, hashSessionToken(token), now)
	if err != nil {
		return err
	}
	if !revoked {
		return errNotAuthenticated
	}
	return nil
}

// hashSessionToken derives the stored form of a session token. Only the
// hash is persisted, so a leaked database does not leak live sessions.
func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
