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

// OfferingHandler handles HTTP requests for service offering endpoints.
type OfferingHandler struct {
	service *service.OfferingService
	logger  *slog.Logger
}

// NewOfferingHandler creates a new offering HTTP handler.
func NewOfferingHandler(svc *service.OfferingService, logger *slog.Logger) *OfferingHandler {
	return &OfferingHandler{
		service: svc,
		logger:  logger,
	}
}

// OfferingRequest is the JSON request body for creating or updating an offering.
type OfferingRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description"`
	IncludedItems []string `json:"included_items"`
	PriceMin      int64    `json:"price_min" validate:"gte=0"`
	PriceMax      int64    `json:"price_max" validate:"gte=0"`
	Currency      string   `json:"currency"`
}

func (req *OfferingRequest) toInput() *service.OfferingInput {
	return &service.OfferingInput{
		Title:         req.Title,
		Description:   req.Description,
		IncludedItems: req.IncludedItems,
		PriceMin:      req.PriceMin,
		PriceMax:      req.PriceMax,
		Currency:      req.Currency,
	}
}

// ListOfferings handles GET /api/v1/services.
func (h *OfferingHandler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.service.ListOfferings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: offerings})
}

// GetOffering handles GET /api/v1/services/{id}.
func (h *OfferingHandler) GetOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	offering, err := h.service.GetOffering(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: offering})
}

// CreateOffering handles POST /api/v1/admin/services.
func (h *OfferingHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeOffering(w, r)
	if !ok {
		return
	}

	offering, err := h.service.CreateOffering(r.Context(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: offering})
}

// UpdateOffering handles PUT /api/v1/admin/services/{id}.
func (h *OfferingHandler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	req, ok := h.decodeOffering(w, r)
	if !ok {
		return
	}

	offering, err := h.service.UpdateOffering(r.Context(), id, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: offering})
}

// DeleteOffering handles DELETE /api/v1/admin/services/{id}.
func (h *OfferingHandler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteOffering(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *OfferingHandler) decodeOffering(w http.ResponseWriter, r *http.Request) (*OfferingRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req OfferingRequest
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
