package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/pkg/httputil"
	"github.com/erico-tech-world/personal-portfolio/pkg/validator"
)

// GalleryHandler handles HTTP requests for gallery endpoints.
type GalleryHandler struct {
	service *service.GalleryService
	logger  *slog.Logger
}

// NewGalleryHandler creates a new gallery HTTP handler.
func NewGalleryHandler(svc *service.GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateGalleryItemRequest is the JSON request body for editing item metadata.
type UpdateGalleryItemRequest struct {
	Category    string `json:"category" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectURL  string `json:"project_url" validate:"omitempty,url"`
}

// ListGalleryItems handles GET /api/v1/gallery.
func (h *GalleryHandler) ListGalleryItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListGalleryItems(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// GetGalleryItem handles GET /api/v1/gallery/{id}.
func (h *GalleryHandler) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	item, err := h.service.GetGalleryItem(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// CreateGalleryItem handles POST /api/v1/admin/gallery (multipart/form-data).
func (h *GalleryHandler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	maxSize := domain.MaxUploadSize + (1 << 20) // 1MB overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "image file is required: " + err.Error()},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &service.CreateGalleryItemInput{
		Category:    r.FormValue("category"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ProjectURL:  r.FormValue("project_url"),
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Image:       file,
	}

	item, err := h.service.CreateGalleryItem(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// UpdateGalleryItem handles PUT /api/v1/admin/gallery/{id}.
func (h *GalleryHandler) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item, err := h.service.UpdateGalleryItem(r.Context(), id, &service.UpdateGalleryItemInput{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		ProjectURL:  req.ProjectURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// DeleteGalleryItem handles DELETE /api/v1/admin/gallery/{id}?media_id=...
func (h *GalleryHandler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	mediaID := r.URL.Query().Get("media_id")
	if mediaID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "media_id query parameter is required"},
		})
		return
	}

	result, err := h.service.DeleteGalleryItem(r.Context(), id, mediaID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
