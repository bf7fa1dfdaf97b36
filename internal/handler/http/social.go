package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/pkg/httputil"
	"github.com/erico-tech-world/personal-portfolio/pkg/validator"
)

// SocialHandler handles HTTP requests for social link endpoints.
type SocialHandler struct {
	service *service.SocialService
	logger  *slog.Logger
}

// NewSocialHandler creates a new social link HTTP handler.
func NewSocialHandler(svc *service.SocialService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{
		service: svc,
		logger:  logger,
	}
}

// SocialLinkRequest is the JSON request body for creating or updating a link.
type SocialLinkRequest struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
}

// ListSocialLinks handles GET /api/v1/socials.
func (h *SocialHandler) ListSocialLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListSocialLinks(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: links})
}

// CreateSocialLink handles POST /api/v1/admin/socials.
func (h *SocialHandler) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSocialLink(w, r)
	if !ok {
		return
	}

	link, err := h.service.CreateSocialLink(r.Context(), &service.SocialLinkInput{
		Platform: req.Platform,
		URL:      req.URL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: link})
}

// UpdateSocialLink handles PUT /api/v1/admin/socials/{id}.
func (h *SocialHandler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	req, ok := h.decodeSocialLink(w, r)
	if !ok {
		return
	}

	link, err := h.service.UpdateSocialLink(r.Context(), id, &service.SocialLinkInput{
		Platform: req.Platform,
		URL:      req.URL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: link})
}

// DeleteSocialLink handles DELETE /api/v1/admin/socials/{id}.
func (h *SocialHandler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteSocialLink(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SocialHandler) decodeSocialLink(w http.ResponseWriter, r *http.Request) (*SocialLinkRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SocialLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return nil, false
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, false
	}

	return &req, true
}
