package auth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultDenylist seeds the compromised-password set with entries that
// keep showing up at the top of public breach corpora.
var defaultDenylist = []string{
	"password", "password1", "password123", "passw0rd",
	"123456", "1234567", "12345678", "123456789", "1234567890",
	"qwerty", "qwertyuiop", "1q2w3e4r", "1qaz2wsx", "qazwsx",
	"abc123", "aa123456", "admin", "administrator", "root", "toor",
	"letmein", "welcome", "welcome123", "iloveyou", "monkey",
	"dragon", "sunshine", "princess", "football", "baseball",
	"trustno1", "superman", "batman", "shadow", "master",
	"secret", "freedom", "whatever", "hello123", "test123",
	"changeme", "default", "guest", "login",
}

// Denylist is a set of known-compromised passwords.
type Denylist struct {
	entries map[string]struct{}
}

// NewDenylist builds a denylist from the built-in defaults plus any
// extra entries.
func NewDenylist(extra ...string) *Denylist {
	d := &Denylist{entries: make(map[string]struct{}, len(defaultDenylist)+len(extra))}
	d.add(defaultDenylist)
	d.add(extra)
	return d
}

// LoadDenylistFile extends a denylist with entries from a YAML file
// holding a flat list of passwords.
func (d *Denylist) LoadDenylistFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read denylist: %w", err)
	}
	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse denylist %s: %w", path, err)
	}
	d.add(entries)
	return nil
}

// Contains reports whether password is a known-compromised entry.
// Matching is case-insensitive: list entries are lowercase and casing
// a leaked password does not make it safe.
func (d *Denylist) Contains(password string) bool {
	if d == nil {
		return false
	}
	_, ok := d.entries[strings.ToLower(strings.TrimSpace(password))]
	return ok
}

// Len returns the number of entries.
func (d *Denylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Denylist) add(entries []string) {
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		d.entries[entry] = struct{}{}
	}
}
