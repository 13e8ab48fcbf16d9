package server

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my report.pdf", "my_report.pdf"},
		{"../../../../etc/passwd", "etc_passwd"},
		{"../../../../etc/passwd.txt", "etc_passwd.txt"},
		{"..\\..\\windows\\system32\\cmd.exe", "windows_system32_cmd.exe"},
		{"./current.txt", "current.txt"},
		{"nested/dir/file.csv", "nested_dir_file.csv"},
		{"sem;col&ons.txt", "semcolons.txt"},
		{"...", ""},
		{"", ""},
		{"   ", ""},
		{"résumé.pdf", "rsum.pdf"},
	}
	for _, tc := range cases {
		if got := sanitizeFileName(tc.in); got != tc.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"test report", "test_report"},
		{"report.pdf", "report"},
		{"../../../../etc/passwd", "etc_passwd"},
		{"../../../../etc/passwd.txt", "etc_passwd"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := sanitizeDisplayName(tc.in); got != tc.want {
			t.Errorf("sanitizeDisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
