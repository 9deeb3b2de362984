package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pulsewatch/internal/apperrors"
	"pulsewatch/internal/middleware"
	"pulsewatch/internal/model"
	"pulsewatch/internal/service"
)

type WebsiteHandler struct {
	svc    service.MonitorService
	logger *slog.Logger
}

func NewWebsiteHandler(svc service.MonitorService, logger *slog.Logger) *WebsiteHandler {
	return &WebsiteHandler{svc: svc, logger: logger}
}

type registerWebsiteRequest struct {
	URL string `json:"url"`
}

func (r *registerWebsiteRequest) Validate() *apperrors.ValidationError {
	if strings.TrimSpace(r.URL) == "" {
		return apperrors.NewValidation("url", "url is required")
	}
	return nil
}

type recordTickRequest struct {
	Status  string   `json:"status"`
	Latency *float64 `json:"latency"`
}

func (r *recordTickRequest) Validate() *apperrors.ValidationError {
	if !model.TickStatus(r.Status).Valid() {
		return apperrors.NewValidation("status", "status must be one of Good, Bad, Unknown")
	}
	if r.Latency == nil || *r.Latency < 0 {
		return apperrors.NewValidation("latency", "latency must be a non-negative number")
	}
	return nil
}

// Register handles POST /api/v1/website.
func (h *WebsiteHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		return
	}

	var req registerWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register payload", slog.String("error", err.Error()))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if verr := req.Validate(); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	website, err := h.svc.RegisterWebsite(r.Context(), userID, strings.TrimSpace(req.URL))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": website.ID})
}

// RecordTick handles POST /api/v1/website/{websiteId}/tick.
func (h *WebsiteHandler) RecordTick(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		return
	}

	websiteID := chi.URLParam(r, "websiteId")
	if websiteID == "" {
		respondError(w, http.StatusBadRequest, "websiteId is required in the path")
		return
	}

	var req recordTickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid tick payload",
			slog.String("website_id", websiteID),
			slog.String("error", err.Error()))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if verr := req.Validate(); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	tick, err := h.svc.RecordTick(r.Context(), userID, websiteID, model.TickStatus(req.Status), *req.Latency)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]model.WebsiteTick{"tick": tick})
}

// Status handles GET /api/v1/website/status?websiteId=...
func (h *WebsiteHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		return
	}

	websiteID := r.URL.Query().Get("websiteId")
	if websiteID == "" {
		respondError(w, http.StatusBadRequest, "websiteId query parameter is required")
		return
	}

	website, err := h.svc.GetWebsiteStatus(r.Context(), userID, websiteID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]model.Website{"website": website})
}

// List handles GET /api/v1/websites.
func (h *WebsiteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		return
	}

	websites, err := h.svc.ListWebsites(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if websites == nil {
		websites = []model.Website{}
	}

	respondJSON(w, http.StatusOK, map[string][]model.Website{"websites": websites})
}

// Delete handles DELETE /api/v1/website/{websiteId}.
func (h *WebsiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		return
	}

	websiteID := chi.URLParam(r, "websiteId")
	if websiteID == "" {
		respondError(w, http.StatusBadRequest, "websiteId is required in the path")
		return
	}

	if err := h.svc.SoftDeleteWebsite(r.Context(), userID, websiteID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Website deleted successfully"})
}

// respondServiceError maps service failures to response codes. Internal
// detail is logged, never echoed.
func (h *WebsiteHandler) respondServiceError(w http.ResponseWriter, err error) {
	if apperrors.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "Website not found")
		return
	}
	h.logger.Error("request failed", slog.String("error", err.Error()))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
