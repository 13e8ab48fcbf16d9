// Package api defines the JSON request and response shapes of the
// reportvault HTTP API.
package api

// RegisterRequest is the register payload. Pointer fields distinguish
// absent/null values from empty strings; unknown extra fields are
// ignored on this endpoint.
type RegisterRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// LoginRequest is the login payload. Extra fields are tolerated, but
// both credential fields must be present.
type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// MessageResponse is the generic success body for auth endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse returns the opaque session token issued on login.
type LoginResponse struct {
	Message   string `json:"message"`
	AuthToken string `json:"auth_token"`
}

// UploadResponse describes one accepted report upload. ReportName and
// Description are the sanitized display values, Filename the sanitized
// stored file name with its extension preserved.
type UploadResponse struct {
	Message     string `json:"message"`
	ReportName  string `json:"reportname"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
}

// ReportResponse is the metadata returned by a report read.
type ReportResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FileName    string `json:"file_name"`
}

// ErrorResponse is the error body used by report endpoints and the
// authentication middleware.
type ErrorResponse struct {
	Error string `json:"error"`
}
