package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/internal/repository"
	"github.com/prabesh187/recipe-sharing-platform/internal/service"
	"github.com/prabesh187/recipe-sharing-platform/pkg/httputil"
	"github.com/prabesh187/recipe-sharing-platform/pkg/pagination"
	"github.com/prabesh187/recipe-sharing-platform/pkg/validator"
)

// RecipeHandler handles HTTP requests for recipe endpoints.
type RecipeHandler struct {
	service *service.RecipeService
	logger  *slog.Logger
}

// NewRecipeHandler creates a new recipe HTTP handler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateRecipeRequest is the JSON request body for creating a recipe.
type CreateRecipeRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Cuisine     string   `json:"cuisine" validate:"required,min=1,max=100"`
	Category    string   `json:"category" validate:"required"`
	Difficulty  string   `json:"difficulty" validate:"required"`
	DietaryTags []string `json:"dietary_tags"`
	CookingTime int      `json:"cooking_time" validate:"gte=0"`
	PrepTime    int      `json:"prep_time" validate:"gte=0"`
	Servings    int      `json:"servings" validate:"gte=0"`
	IsPremium   bool     `json:"is_premium"`
	Price       int64    `json:"price" validate:"gte=0"`
}

// UpdateRecipeRequest is the JSON request body for updating a recipe.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Cuisine     *string  `json:"cuisine" validate:"omitempty,min=1,max=100"`
	Category    *string  `json:"category"`
	Difficulty  *string  `json:"difficulty"`
	DietaryTags []string `json:"dietary_tags"`
	CookingTime *int     `json:"cooking_time" validate:"omitempty,gte=0"`
	PrepTime    *int     `json:"prep_time" validate:"omitempty,gte=0"`
	Servings    *int     `json:"servings" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsPremium   *bool    `json:"is_premium"`
	Price       *int64   `json:"price" validate:"omitempty,gte=0"`
}

// RateRecipeRequest is the JSON request body for rating a recipe.
type RateRecipeRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"max=2000"`
}

// --- Handlers ---

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	filter := repository.RecipeFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}

	q := r.URL.Query()
	if v := q.Get("cuisine"); v != "" {
		filter.Cuisine = &v
	}
	if v := q.Get("category"); v != "" {
		if !domain.IsValidCategory(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "unknown category"},
			})
			return
		}
		filter.Category = &v
	}
	if v := q.Get("difficulty"); v != "" {
		if !domain.IsValidDifficulty(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "difficulty must be one of: easy, medium, hard"},
			})
			return
		}
		filter.Difficulty = &v
	}
	if v := q.Get("dietary_tag"); v != "" {
		if !domain.IsValidDietaryTag(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "unknown dietary tag"},
			})
			return
		}
		filter.DietaryTag = &v
	}
	if v := q.Get("status"); v != "" {
		if !domain.IsValidStatus(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "status must be one of: draft, published, archived"},
			})
			return
		}
		filter.Status = &v
	}
	if v := q.Get("author_id"); v != "" {
		filter.AuthorID = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}

	recipes, total, err := h.service.ListRecipes(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(recipes, total, params),
	})
}

// GetRecipe handles GET /api/v1/recipes/{idOrSlug}.
// It accepts both a UUID (recipe ID) and a slug for lookup.
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "recipe id or slug is required"},
		})
		return
	}

	var (
		recipe *domain.Recipe
		err    error
	)

	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		recipe, err = h.service.GetRecipe(r.Context(), idOrSlug)
	} else {
		recipe, err = h.service.GetRecipeBySlug(r.Context(), idOrSlug)
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: recipe})
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateRecipeRequest
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

	input := &service.CreateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		DietaryTags: req.DietaryTags,
		CookingTime: req.CookingTime,
		PrepTime:    req.PrepTime,
		Servings:    req.Servings,
		AuthorID:    userID,
		IsPremium:   req.IsPremium,
		Price:       req.Price,
	}

	recipe, err := h.service.CreateRecipe(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: recipe})
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateRecipeRequest
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

	input := &service.UpdateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		DietaryTags: req.DietaryTags,
		CookingTime: req.CookingTime,
		PrepTime:    req.PrepTime,
		Servings:    req.Servings,
		Status:      req.Status,
		IsPremium:   req.IsPremium,
		Price:       req.Price,
	}

	recipe, err := h.service.UpdateRecipe(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: recipe})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.service.DeleteRecipe(r.Context(), id, userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// RecordView handles POST /api/v1/recipes/{id}/views
func (h *RecipeHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	h.service.RecordView(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// FavoriteRecipe handles POST /api/v1/recipes/{id}/favorite
func (h *RecipeHandler) FavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.FavoriteRecipe(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "favorited"}})
}

// UnfavoriteRecipe handles DELETE /api/v1/recipes/{id}/favorite
func (h *RecipeHandler) UnfavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.UnfavoriteRecipe(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "unfavorited"}})
}

// RateRecipe handles POST /api/v1/recipes/{id}/ratings
func (h *RecipeHandler) RateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req RateRecipeRequest
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

	summary, err := h.service.RateRecipe(r.Context(), &service.RateRecipeInput{
		RecipeID: chi.URLParam(r, "id"),
		UserID:   userID,
		Rating:   req.Rating,
		Review:   req.Review,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: summary})
}

// ListRatings handles GET /api/v1/recipes/{id}/ratings
func (h *RecipeHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	ratings, total, err := h.service.ListRatings(r.Context(), chi.URLParam(r, "id"), params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(ratings, total, params),
	})
}
