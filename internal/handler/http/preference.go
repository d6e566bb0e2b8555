package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prabesh187/recipe-sharing-platform/internal/service"
	"github.com/prabesh187/recipe-sharing-platform/pkg/httputil"
	"github.com/prabesh187/recipe-sharing-platform/pkg/validator"
)

// PreferenceHandler handles HTTP requests for user taste preferences.
type PreferenceHandler struct {
	service *service.RecommendationService
	logger  *slog.Logger
}

// NewPreferenceHandler creates a new preference HTTP handler.
func NewPreferenceHandler(svc *service.RecommendationService, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdatePreferencesRequest is the JSON request body for replacing preferences.
type UpdatePreferencesRequest struct {
	DietaryTags []string `json:"dietary_tags" validate:"max=20"`
	Cuisines    []string `json:"cuisines" validate:"max=20"`
}

// GetPreferences handles GET /api/v1/users/me/preferences
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: prefs})
}

// UpdatePreferences handles PUT /api/v1/users/me/preferences
func (h *PreferenceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdatePreferencesRequest
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

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, req.DietaryTags, req.Cuisines)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: prefs})
}
