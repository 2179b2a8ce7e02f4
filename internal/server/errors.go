package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/hiring-agent/internal/schemas"
)

// ErrBadUpload indicates a request the client can fix: missing file,
// empty filename, unreadable multipart body.
type ErrBadUpload struct {
	Message string
}

func (e *ErrBadUpload) Error() string {
	return fmt.Sprintf("bad upload: %s", e.Message)
}

// HTTPStatus maps an error to a response status. Client mistakes get 400;
// everything else, including schema violations from the scoring pipeline,
// is a 500.
func HTTPStatus(err error) int {
	var badUpload *ErrBadUpload
	if errors.As(err, &badUpload) {
		return http.StatusBadRequest
	}
	var validation *schemas.ValidationError
	if errors.As(err, &validation) {
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
