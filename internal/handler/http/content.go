package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/pkg/httputil"
)

// ContentHandler handles HTTP requests for site content and the CV pair.
type ContentHandler struct {
	service *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content HTTP handler.
func NewContentHandler(svc *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: svc,
		logger:  logger,
	}
}

// UpsertContentRequest is the JSON request body for writing a content entry.
// An empty value is allowed: clearing a section is a valid edit.
type UpsertContentRequest struct {
	Value string `json:"value"`
}

// ListContent handles GET /api/v1/content.
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListContent(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}

// GetContent handles GET /api/v1/content/{key}.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "content key is required"},
		})
		return
	}

	entry, err := h.service.GetContent(r.Context(), key)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entry})
}

// UpsertContent handles PUT /api/v1/admin/content/{key}.
func (h *ContentHandler) UpsertContent(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "content key is required"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpsertContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := h.service.UpsertSiteText(r.Context(), key, req.Value); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"content_key": key}})
}

// UpdateCv handles POST /api/v1/admin/cv (multipart/form-data with "cv" and
// "preview" files).
func (h *ContentHandler) UpdateCv(w http.ResponseWriter, r *http.Request) {
	maxSize := 2*service.MaxCvSize + (1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	cvFile, cvHeader, err := r.FormFile("cv")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "cv file is required: " + err.Error()},
		})
		return
	}
	defer cvFile.Close()

	previewFile, previewHeader, err := r.FormFile("preview")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "preview file is required: " + err.Error()},
		})
		return
	}
	defer previewFile.Close()

	input := &service.UpdateCvInput{
		CvFile: &service.CvFileInput{
			Filename:    cvHeader.Filename,
			ContentType: cvHeader.Header.Get("Content-Type"),
			Size:        cvHeader.Size,
			Data:        cvFile,
		},
		PreviewFile: &service.CvFileInput{
			Filename:    previewHeader.Filename,
			ContentType: previewHeader.Header.Get("Content-Type"),
			Size:        previewHeader.Size,
			Data:        previewFile,
		},
	}

	if err := h.service.UpdateCv(r.Context(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cv updated"}})
}
