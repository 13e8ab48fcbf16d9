package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	email, err := ValidateEmail(" Strong@Test.COM ")
	if err != nil {
		t.Fatalf("validate email: %v", err)
	}
	if email != "strong@test.com" {
		t.Fatalf("expected normalized email, got %q", email)
	}

	for _, raw := range []string{"", "example@example", "no-at-sign.com", "a@b", "user@domain.1", "two@@example.com"} {
		if _, err := ValidateEmail(raw); err == nil {
			t.Fatalf("expected rejection for %q", raw)
		}
	}
}

func TestCheckPasswordPolicy(t *testing.T) {
	denylist := NewDenylist()
	rejected := denylist.Contains

	if err := CheckPassword("Str0ng!Pass", "strong@test.com", rejected); err != nil {
		t.Fatalf("expected strong password to pass: %v", err)
	}
	if err := CheckPassword("123", "weak@test.com", rejected); err != ErrVulnerablePassword {
		t.Fatalf("expected short password rejection, got %v", err)
	}
	if err := CheckPassword("password123", "user@test.com", rejected); err != ErrVulnerablePassword {
		t.Fatalf("expected leaked password rejection, got %v", err)
	}
	if err := CheckPassword("user@test.com", "user@test.com", rejected); err != ErrVulnerablePassword {
		t.Fatalf("expected email-as-password rejection, got %v", err)
	}
	if err := CheckPassword("USER@test.com", "user@test.com", rejected); err != ErrVulnerablePassword {
		t.Fatalf("expected case-folded email-as-password rejection, got %v", err)
	}
}

func TestCheckPasswordWithoutPredicate(t *testing.T) {
	if err := CheckPassword("long-enough-password", "user@test.com", nil); err != nil {
		t.Fatalf("expected nil predicate to be allowed: %v", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "Str0ng!Pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword(hash, "Str0ng!Pass") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected non-matching password to fail")
	}
	if VerifyPassword("", "anything") {
		t.Fatal("expected empty hash to fail")
	}
}

func TestDenylistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	content := "- hunter2hunter2\n- \"  CompanyName2024  \"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write denylist: %v", err)
	}

	d := NewDenylist()
	before := d.Len()
	if err := d.LoadDenylistFile(path); err != nil {
		t.Fatalf("load denylist: %v", err)
	}
	if d.Len() != before+2 {
		t.Fatalf("expected %d entries, got %d", before+2, d.Len())
	}
	if !d.Contains("hunter2hunter2") {
		t.Fatal("expected file entry to match")
	}
	if !d.Contains("companyname2024") {
		t.Fatal("expected trimmed lowercase entry to match")
	}
	if d.Contains("not-on-the-list") {
		t.Fatal("unexpected match")
	}
}
