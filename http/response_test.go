package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/kvtodo"
	kvtodohttp "github.com/sagarc03/kvtodo/http"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", kvtodo.ErrNotFound, http.StatusNotFound, "not_found"},
		{"invalid input", kvtodo.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{"internal", kvtodo.ErrInternal, http.StatusInternalServerError, "internal_error"},
		{"unexpected", errors.New("some unexpected error"), http.StatusInternalServerError, "internal_error"},
		{"wrapped not found", fmt.Errorf("delete todo: %w", kvtodo.ErrNotFound), http.StatusNotFound, "not_found"},
		{"joined invalid input", errors.Join(errors.New("context"), kvtodo.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			kvtodohttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	kvtodohttp.WriteError(rec, http.StatusBadRequest, "bad_request", "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"bad_request"`)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid request"`)
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	err := kvtodohttp.WriteJSON(rec, http.StatusOK, data)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"key":"value"`)
}

func TestWriteJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()

	// Channels cannot be JSON encoded
	data := make(chan int)
	err := kvtodohttp.WriteJSON(rec, http.StatusOK, data)

	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()

	kvtodohttp.WriteText(rec, http.StatusOK, "Task created")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Task created", rec.Body.String())
}
