package models

import "time"

// Report is one uploaded report. Name and Description are display
// metadata sanitized from user input; FileName is the sanitized upload
// filename with its extension preserved. BlobKey references the stored
// bytes in the content-addressed blob store and carries no user input.
type Report struct {
	ID          int64
	OwnerID     string
	Name        string
	Description string
	FileName    string
	BlobKey     string
	SHA256      string
	SizeBytes   int64
	CreatedAt   time.Time
}
