package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxEmailLength    = 254
)

// ErrVulnerablePassword covers every password policy rejection: too
// short, known compromised, or equal to the email. Callers see one
// error kind regardless of which rule fired.
var ErrVulnerablePassword = errors.New("vulnerable password")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

// RejectedPasswordFunc reports whether a password is known compromised.
type RejectedPasswordFunc func(password string) bool

// NormalizeEmail returns the canonical lowercase form of an email address.
func NormalizeEmail(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}

// ValidateEmail normalizes and shape-checks an email address.
func ValidateEmail(raw string) (string, error) {
	email := NormalizeEmail(raw)
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(email) > maxEmailLength {
		return "", fmt.Errorf("email too long")
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("invalid email")
	}
	return email, nil
}

// CheckPassword applies the registration password policy. The rejected
// predicate is pluggable so the compromised-password source can change
// without touching callers.
func CheckPassword(password, email string, rejected RejectedPasswordFunc) error {
	if len(password) < minPasswordLength {
		return ErrVulnerablePassword
	}
	if rejected != nil && rejected(password) {
		return ErrVulnerablePassword
	}
	if NormalizeEmail(password) == NormalizeEmail(email) {
		return ErrVulnerablePassword
	}
	return nil
}

// HashPassword hashes one plaintext password for persistent storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword verifies plaintext password against a bcrypt hash.
func VerifyPassword(passwordHash, candidate string) bool {
	if strings.TrimSpace(passwordHash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(candidate)) == nil
}
