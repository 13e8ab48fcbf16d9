package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reportvault/internal/models"
)

// CreateSession records one session bound to an account and token hash.
func (s *Store) CreateSession(ctx context.Context, accountID, tokenHash string, issuedAt, expiresAt time.Time) (*models.Session, error) {
	accountID = strings.TrimSpace(accountID)
	tokenHash = strings.TrimSpace(tokenHash)
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		TokenHash: tokenHash,
		IssuedAt:  issuedAt.UTC(),
		ExpiresAt: expiresAt.UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, account_id, token_hash, issued_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, NULL)
	`, session.ID, session.AccountID, session.TokenHash, dbFormatTime(issuedAt), dbFormatTime(expiresAt))
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetAccountBySessionTokenHash returns the owning account for an
// active, non-revoked, non-expired session token hash, or nil when the
// token does not authenticate.
func (s *Store) GetAccountBySessionTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.Account, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email, a.password_hash, a.created_at
		FROM sessions s
		JOIN accounts a ON a.id = s.account_id
		WHERE s.token_hash = ?
		  AND s.revoked_at IS NULL
		  AND s.expires_at > ?
		LIMIT 1
	`, tokenHash, dbFormatTime(now))

	return scanAccount(row)
}

// RevokeSessionByTokenHash marks one active session revoked by token
// hash. It reports whether a session was actually revoked so callers
// can refuse logout on unknown or already-revoked tokens.
func (s *Store) RevokeSessionByTokenHash(ctx context.Context, tokenHash string, revokedAt time.Time) (bool, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return false, nil
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE token_hash = ?
		  AND revoked_at IS NULL
	`, dbFormatTime(revokedAt), tokenHash)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetSessionByTokenHash returns session state by token hash, revoked or
// not, or nil when no such session exists.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at
		FROM sessions
		WHERE token_hash = ?
		LIMIT 1
	`, tokenHash)

	var session models.Session
	var issuedAt, expiresAt string
	var revokedAt sql.NullString
	if err := row.Scan(&session.ID, &session.AccountID, &session.TokenHash, &issuedAt, &expiresAt, &revokedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	parsedIssued, err := dbParseTime(issuedAt)
	if err != nil {
		return nil, err
	}
	parsedExpires, err := dbParseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	session.IssuedAt = parsedIssued
	session.ExpiresAt = parsedExpires
	if revokedAt.Valid {
		parsedRevoked, err := dbParseTime(revokedAt.String)
		if err != nil {
			return nil, err
		}
		session.RevokedAt = &parsedRevoked
	}
	return &session, nil
}
