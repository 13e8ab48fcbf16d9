package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"reportvault/internal/models"
)

// CreateReport inserts one report row and assigns its sequential id.
func (s *Store) CreateReport(ctx context.Context, report *models.Report, now time.Time) (*models.Report, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}
	if strings.TrimSpace(report.OwnerID) == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if strings.TrimSpace(report.Name) == "" {
		return nil, fmt.Errorf("report name is required")
	}
	if strings.TrimSpace(report.BlobKey) == "" {
		return nil, fmt.Errorf("blob key is required")
	}

	report.CreatedAt = now.UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (owner_id, name, description, file_name, blob_key, sha256, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.OwnerID, report.Name, report.Description, report.FileName,
		report.BlobKey, report.SHA256, report.SizeBytes, dbFormatTime(now))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	report.ID = id
	return report, nil
}

// GetReportByID returns one report by id, or nil when absent. Ownership
// is checked by the caller so missing and foreign reports surface
// identically.
func (s *Store) GetReportByID(ctx context.Context, id int64) (*models.Report, error) {
	if id <= 0 {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, file_name, blob_key, sha256, size_bytes, created_at
		FROM reports
		WHERE id = ?
		LIMIT 1
	`, id)
	return scanReport(row)
}

// ListReportsByOwner returns all reports owned by one account, oldest
// first.
func (s *Store) ListReportsByOwner(ctx context.Context, ownerID string) ([]models.Report, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, file_name, blob_key, sha256, size_bytes, created_at
		FROM reports
		WHERE owner_id = ?
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		if report == nil {
			continue
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func scanReport(scanner interface {
	Scan(dest ...any) error
}) (*models.Report, error) {
	var report models.Report
	var createdAt string
	if err := scanner.Scan(
		&report.ID, &report.OwnerID, &report.Name, &report.Description,
		&report.FileName, &report.BlobKey, &report.SHA256, &report.SizeBytes, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	parsed, err := dbParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	report.CreatedAt = parsed
	return &report, nil
}
