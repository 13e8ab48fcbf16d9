package server

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"reportvault/internal/blobstore"
	"reportvault/internal/models"
	"reportvault/internal/store"
)

const (
	defaultMaxUploadBytes  = 100 << 20 // 100 MiB
	defaultMultipartMemory = 8 << 20   // 8 MiB
)

// ReportService orchestrates report uploads and ownership-gated reads.
type ReportService struct {
	store *store.Store
	blobs blobstore.BlobStore
}

// UploadInput describes one report upload after multipart extraction.
type UploadInput struct {
	Name        string
	Description string
	Filename    string
	Content     io.Reader
}

// NewReportService constructs a ReportService.
func NewReportService(st *store.Store, blobs blobstore.BlobStore) *ReportService {
	return &ReportService{store: st, blobs: blobs}
}

// Upload sanitizes metadata, stores the bytes under a content-derived
// key, and records the report. The sanitized display values are what
// the API returns; the raw inputs are never stored.
func (s *ReportService) Upload(ctx context.Context, ownerID string, in UploadInput, now time.Time) (*models.Report, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", errInvalidInput)
	}
	if in.Content == nil {
		return nil, fmt.Errorf("%w: file is required", errInvalidInput)
	}

	// A filename that sanitizes to nothing, or carries no extension,
	// is rejected rather than guessed at.
	fileName := sanitizeFileName(in.Filename)
	if fileName == "" || path.Ext(fileName) == "" {
		return nil, errInvalidFile
	}

	name := sanitizeDisplayName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty after sanitation", errInvalidInput)
	}
	description := sanitizeDisplayName(in.Description)

	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	put, err := s.blobs.Put(ctx, in.Content)
	if err != nil {
		return nil, fmt.Errorf("store report content: %w", err)
	}

	report, err := s.store.CreateReport(ctx, &models.Report{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		FileName:    fileName,
		BlobKey:     put.Key,
		SHA256:      put.SHA256,
		SizeBytes:   put.SizeBytes,
	}, now)
	if err != nil {
		// Content is deduplicated by digest, so the blob may back
		// another report; leave it rather than risk deleting shared
		// bytes.
		return nil, err
	}
	return report, nil
}

// GetForOwner resolves a report for one owner. A missing report and a
// report owned by someone else return the identical error.
func (s *ReportService) GetForOwner(ctx context.Context, ownerID string, id int64) (*models.Report, error) {
	report, err := s.store.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil || report.OwnerID != ownerID {
		return nil, errReportNotFound
	}
	return report, nil
}

// OpenContent returns a reader over a report's stored bytes.
func (s *ReportService) OpenContent(ctx context.Context, report *models.Report) (io.ReadCloser, error) {
	if report == nil {
		return nil, errReportNotFound
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	return s.blobs.Open(ctx, report.BlobKey)
}
