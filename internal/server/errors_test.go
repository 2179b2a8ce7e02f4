package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/hiring-agent/internal/schemas"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad upload", &ErrBadUpload{Message: "empty file"}, http.StatusBadRequest},
		{"wrapped bad upload", fmt.Errorf("handling: %w", &ErrBadUpload{Message: "x"}), http.StatusBadRequest},
		{"schema violation", &schemas.ValidationError{}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrBadUploadMessage(t *testing.T) {
	err := &ErrBadUpload{Message: "empty filename"}
	assert.Equal(t, "bad upload: empty filename", err.Error())
}
