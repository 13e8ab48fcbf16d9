package server

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reportvault/internal/blobstore"
	"reportvault/internal/store"
)

func newTestReportService(t *testing.T) (*ReportService, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "report-test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	bs, err := blobstore.NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	return NewReportService(st, bs), st
}

func seedOwner(t *testing.T, st *store.Store, email string) string {
	t.Helper()
	account, err := st.CreateAccount(context.Background(), email, "hash", time.Now().UTC())
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account.ID
}

func TestReportServiceUploadStoresContent(t *testing.T) {
	svc, st := newTestReportService(t)
	ctx := context.Background()
	owner := seedOwner(t, st, "alice@example.com")

	report, err := svc.Upload(ctx, owner, UploadInput{
		Name:        "weekly summary",
		Description: "week 35",
		Filename:    "summary.csv",
		Content:     strings.NewReader("a,b,c\n1,2,3\n"),
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if report.ID != 1 {
		t.Fatalf("expected first report id 1, got %d", report.ID)
	}
	if report.Name != "weekly_summary" {
		t.Fatalf("unexpected name: %q", report.Name)
	}
	if report.FileName != "summary.csv" {
		t.Fatalf("unexpected file name: %q", report.FileName)
	}
	if report.SizeBytes != int64(len("a,b,c\n1,2,3\n")) {
		t.Fatalf("unexpected size: %d", report.SizeBytes)
	}

	rc, err := svc.OpenContent(ctx, report)
	if err != nil {
		t.Fatalf("open content: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if string(data) != "a,b,c\n1,2,3\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestReportServiceUploadValidation(t *testing.T) {
	svc, st := newTestReportService(t)
	ctx := context.Background()
	owner := seedOwner(t, st, "alice@example.com")
	now := time.Now().UTC()

	cases := []struct {
		name string
		in   UploadInput
		want error
	}{
		{
			name: "missing name",
			in:   UploadInput{Filename: "f.txt", Content: strings.NewReader("x")},
			want: errInvalidInput,
		},
		{
			name: "missing content",
			in:   UploadInput{Name: "r", Filename: "f.txt"},
			want: errInvalidInput,
		},
		{
			name: "no extension",
			in:   UploadInput{Name: "r", Filename: "noext", Content: strings.NewReader("x")},
			want: errInvalidFile,
		},
		{
			name: "filename sanitizes to nothing",
			in:   UploadInput{Name: "r", Filename: "...", Content: strings.NewReader("x")},
			want: errInvalidFile,
		},
		{
			name: "name sanitizes to nothing",
			in:   UploadInput{Name: "..;..", Filename: "f.txt", Content: strings.NewReader("x")},
			want: errInvalidInput,
		},
	}
	for _, tc := range cases {
		_, err := svc.Upload(ctx, owner, tc.in, now)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestReportServiceOwnershipGate(t *testing.T) {
	svc, st := newTestReportService(t)
	ctx := context.Background()
	alice := seedOwner(t, st, "alice@example.com")
	mallory := seedOwner(t, st, "mallory@example.com")

	report, err := svc.Upload(ctx, alice, UploadInput{
		Name:     "private",
		Filename: "private.txt",
		Content:  strings.NewReader("secret"),
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := svc.GetForOwner(ctx, alice, report.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	_, otherErr := svc.GetForOwner(ctx, mallory, report.ID)
	_, missingErr := svc.GetForOwner(ctx, mallory, 999)
	if !errors.Is(otherErr, errReportNotFound) {
		t.Fatalf("expected not-found for foreign report, got %v", otherErr)
	}
	if !errors.Is(missingErr, errReportNotFound) {
		t.Fatalf("expected not-found for missing report, got %v", missingErr)
	}
}
