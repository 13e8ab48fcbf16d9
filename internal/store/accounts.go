package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reportvault/internal/models"
)

// ErrEmailTaken reports a registration conflict on the unique email
// column. The column constraint is the single arbitration point, so
// concurrent registrations of one email produce exactly one winner.
var ErrEmailTaken = errors.New("email already exists")

// CreateAccount inserts one account. The email must already be
// normalized lowercase by the caller.
func (s *Store) CreateAccount(ctx context.Context, email, passwordHash string, now time.Time) (*models.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, account.ID, account.Email, account.PasswordHash, dbFormatTime(now))
	if err != nil {
		if isUniqueConstraint(err, "accounts.email") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return account, nil
}

// GetAccountByEmail returns an account by normalized email, or nil when
// no such account exists.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = ?
		LIMIT 1
	`, email)
	return scanAccount(row)
}

// GetAccountByID returns an account by id, or nil when absent.
func (s *Store) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE id = ?
		LIMIT 1
	`, id)
	return scanAccount(row)
}

// ListAccounts returns all accounts ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(scanner interface {
	Scan(dest ...any) error
}) (*models.Account, error) {
	var account models.Account
	var createdAt string
	if err := scanner.Scan(&account.ID, &account.Email, &account.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	parsed, err := dbParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	account.CreatedAt = parsed
	return &account, nil
}

// isUniqueConstraint detects SQLite unique violations on a column. The
// driver surfaces them as plain errors, so string inspection is the
// only portable check through database/sql.
func isUniqueConstraint(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
