package models

import "time"

// Account is one registered user, keyed by normalized lowercase email.
// PasswordHash holds a bcrypt hash; plaintext is never stored.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is one issued login session. The opaque bearer token is never
// persisted; only its SHA-256 hash is. A session authenticates while it
// is neither revoked nor expired.
type Session struct {
	ID        string
	AccountID string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the session has been revoked.
func (s *Session) Revoked() bool {
	return s != nil && s.RevokedAt != nil
}
