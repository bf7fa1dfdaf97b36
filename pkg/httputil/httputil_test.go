package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
	"github.com/erico-tech-world/personal-portfolio/pkg/logger"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// writeErr runs WriteError against a fresh recorder for a GET on the given
// path, with corrID in context when non-empty.
func writeErr(err error, corrID string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ctx := context.Background()
	if corrID != "" {
		ctx = logger.WithCorrelationID(ctx, corrID)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery", nil).WithContext(ctx)
	WriteError(rec, req, err, quietLogger())
	return rec
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"image_url": "https://cdn.example.com/a.jpg"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestResponse_OmitsUnsetHalf(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "ok"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw, "error")

	rec = httptest.NewRecorder()
	WriteJSON(rec, http.StatusBadRequest, Response{Error: &ErrorResponse{Code: "ERR", Message: "m"}})

	raw = map[string]json.RawMessage{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw, "data")
}

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"AppError keeps its own code and status", apperrors.NotFound("gallery_item", "42"), http.StatusNotFound, "NOT_FOUND"},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"sentinel already exists", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"sentinel invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown error is an opaque 500", fmt.Errorf("pq: relation missing"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := writeErr(tt.err, "")
			assert.Equal(t, tt.status, rec.Code)

			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestWriteError_UnknownError_HidesDetail(t *testing.T) {
	rec := writeErr(fmt.Errorf("pq: password authentication failed"), "")

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "password")
}

func TestWriteError_EchoesCorrelationID(t *testing.T) {
	rec := writeErr(apperrors.ErrNotFound, "corr-123")

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "corr-123", resp.Error.RequestID)
}

func TestWriteError_NoCorrelationID_OmitsRequestID(t *testing.T) {
	rec := writeErr(apperrors.ErrNotFound, "")

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))

	var errObj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["error"], &errObj))
	assert.NotContains(t, errObj, "request_id")
}

func TestWriteError_AppError_EchoesCorrelationID(t *testing.T) {
	rec := writeErr(apperrors.NotFound("social_link", "7"), "corr-456")

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "corr-456", resp.Error.RequestID)
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, fmt.Errorf("body is not valid JSON"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Equal(t, "body is not valid JSON", resp.Error.Message)
}

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		perPage    int
		totalPages int
		hasNext    bool
	}{
		{"partial last page rounds up", 25, 1, 10, 3, true},
		{"on the last page", 21, 3, 10, 3, false},
		{"exact division", 30, 2, 10, 3, true},
		{"empty", 0, 1, 20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse([]string{"m"}, tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
			assert.Equal(t, tt.hasNext, resp.HasNext)
		})
	}
}

func TestNewPaginatedResponse_NilDataSerializesAsEmptyArray(t *testing.T) {
	resp := NewPaginatedResponse[string](nil, 0, 1, 20)
	require.NotNil(t, resp.Data)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`)
}

func TestParseID_Valid(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseID(rec, "42")

	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Zero(t, rec.Body.Len(), "nothing should be written on success")
}

func TestParseID_Invalid(t *testing.T) {
	for _, param := range []string{"abc", "", "0", "-5", "1.5"} {
		t.Run("param "+param, func(t *testing.T) {
			rec := httptest.NewRecorder()
			_, ok := ParseID(rec, param)

			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
		})
	}
}
