package server

import (
	"path"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFileName collapses a user-supplied name into a single safe
// path segment: separators are normalized, traversal and empty
// segments are dropped, the remaining segments are joined with
// underscores, and anything outside [A-Za-z0-9._-] is removed. A
// traversal payload like "../../etc/passwd" comes out as "etc_passwd".
// The result is display metadata only; storage paths never use it.
func sanitizeFileName(raw string) string {
	raw = strings.ReplaceAll(raw, "\\", "/")

	kept := make([]string, 0, 4)
	for _, segment := range strings.Split(raw, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		kept = append(kept, segment)
	}

	name := strings.Join(kept, "_")
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeNameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// sanitizeDisplayName derives a report name or description from user
// input: sanitized like a filename, with any extension stripped so
// "etc_passwd.txt" displays as "etc_passwd".
func sanitizeDisplayName(raw string) string {
	name := sanitizeFileName(raw)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
