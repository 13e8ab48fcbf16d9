package server

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reportvault/internal/api"
)

func (s *Server) handleReportUpload(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		s.writeErrorBody(w, r, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.multipartMaxMemory); err != nil {
		s.writeErrorBody(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// No file part. A plain form value here (typically a URL) is
		// an external-source reference; the server never fetches
		// remote content on a client's behalf, so both cases are
		// invalid input.
		s.writeErrorBody(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}
	defer file.Close()

	report, err := s.reportService.Upload(r.Context(), account.ID, UploadInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Filename:    multipartFileName(header),
		Content:     file,
	}, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, errInvalidFile):
			s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidFile)
		case errors.Is(err, errInvalidInput):
			s.writeErrorBody(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
		default:
			s.log().Error("report upload", "owner", account.ID, "error", err)
			s.writeErrorBody(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, api.UploadResponse{
		Message:     msgUploadOK,
		ReportName:  report.Name,
		Description: report.Description,
		Filename:    report.FileName,
	})
}

// multipartFileName recovers the filename exactly as the client sent
// it. FileHeader.Filename has already been through filepath.Base, which
// discards the directory segments the sanitizer folds into the stored
// name.
func multipartFileName(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	if cd := header.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name, ok := params["filename"]; ok {
				return name
			}
		}
	}
	return header.Filename
}

func (s *Server) handleReportRead(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		s.writeErrorBody(w, r, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	// A non-numeric id is indistinguishable from a missing report.
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		s.writeErrorBody(w, r, http.StatusNotFound, msgReportNotFound)
		return
	}

	report, err := s.reportService.GetForOwner(r.Context(), account.ID, id)
	if err != nil {
		if errors.Is(err, errReportNotFound) {
			s.writeErrorBody(w, r, http.StatusNotFound, msgReportNotFound)
			return
		}
		s.log().Error("report read", "owner", account.ID, "report_id", id, "error", err)
		s.writeErrorBody(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, api.ReportResponse{
		Name:        report.Name,
		Description: report.Description,
		FileName:    report.FileName,
	})
}
