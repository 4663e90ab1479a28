package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		status int
		body   string
	}{
		{
			name:   "message response",
			data:   map[string]string{"message": "Applicant deleted successfully."},
			status: http.StatusOK,
			body:   `{"message":"Applicant deleted successfully."}`,
		},
		{
			name:   "field errors",
			data:   map[string][]string{"email": {"This field is required."}},
			status: http.StatusBadRequest,
			body:   `{"email":["This field is required."]}`,
		},
		{
			name:   "null body",
			data:   nil,
			status: http.StatusNotFound,
			body:   `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.body), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, contentTypeJSON, w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]any{"ch": make(chan int)}, http.StatusCreated)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, contentTypeJSON, w.Header().Get("Content-Type"))
}
