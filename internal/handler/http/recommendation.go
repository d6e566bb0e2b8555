package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prabesh187/recipe-sharing-platform/internal/service"
	"github.com/prabesh187/recipe-sharing-platform/pkg/httputil"
)

// RecommendationHandler handles HTTP requests for recommendation endpoints.
type RecommendationHandler struct {
	service *service.RecommendationService
	logger  *slog.Logger
}

// NewRecommendationHandler creates a new recommendation HTTP handler.
func NewRecommendationHandler(svc *service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: svc,
		logger:  logger,
	}
}

// parseLimit reads the optional ?limit parameter; zero means "use the default".
func parseLimit(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 1 {
		return 0, false
	}
	return limit, true
}

// ForYou handles GET /api/v1/recommendations/for-you
func (h *RecommendationHandler) ForYou(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, ok := parseLimit(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a positive integer"},
		})
		return
	}

	recs := h.service.ForYou(r.Context(), userID, limit)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: recs})
}

// Trending handles GET /api/v1/recommendations/trending
func (h *RecommendationHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a positive integer"},
		})
		return
	}

	timeframe := r.URL.Query().Get("timeframe")

	trending, err := h.service.Trending(r.Context(), timeframe, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: trending})
}

// Similar handles GET /api/v1/recommendations/similar/{recipeId}
func (h *RecommendationHandler) Similar(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a positive integer"},
		})
		return
	}

	similar, err := h.service.Similar(r.Context(), chi.URLParam(r, "recipeId"), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: similar})
}
