package server

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/ingest"
	"github.com/jonathan/hiring-agent/internal/pipeline"
)

// maxUploadBytes bounds resume uploads. Resumes are small; anything larger
// is not a resume.
const maxUploadBytes = 10 << 20

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScore accepts a multipart resume upload (form field "file") and
// returns the full evaluation. Partial extraction is not an error: an
// incomplete record still scores, and incompleteness shows up in the
// evidence text rather than the status code.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	result, err := s.score(w, r)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("scoring run failed", zap.Error(err))
		}
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrBadUpload{Message: "multipart form field 'file' is required"}
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	if header.Filename == "" {
		return nil, &ErrBadUpload{Message: "empty filename"}
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrBadUpload{Message: "failed to read upload: " + err.Error()}
	}
	if len(content) == 0 {
		return nil, &ErrBadUpload{Message: "empty file"}
	}

	text, err := ingest.ExtractText(header.Filename, content)
	if err != nil {
		return nil, &ErrBadUpload{Message: "unreadable resume: " + err.Error()}
	}

	return s.pipeline.RunText(r.Context(), text)
}
