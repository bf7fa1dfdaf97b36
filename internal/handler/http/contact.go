package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/pkg/httputil"
	"github.com/erico-tech-world/personal-portfolio/pkg/pagination"
	"github.com/erico-tech-world/personal-portfolio/pkg/validator"
)

// ContactHandler handles the public contact form and the admin inbox.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitContactRequest is the JSON request body for the public contact form.
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// SubmitContact handles POST /api/v1/contact.
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SubmitContactRequest
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

	msg, err := h.service.SubmitContactMessage(r.Context(), &service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]any{
		"id":      msg.ID,
		"message": "Message received",
	}})
}

// ListContactMessages handles GET /api/v1/admin/contacts.
func (h *ContactHandler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	messages, total, err := h.service.ListContactMessages(r.Context(), params.Offset, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(messages, total, params.Page, params.PerPage))
}

// DeleteContactMessage handles DELETE /api/v1/admin/contacts/{id}.
func (h *ContactHandler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteContactMessage(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
