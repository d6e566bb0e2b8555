package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prabesh187/recipe-sharing-platform/internal/service"
	"github.com/prabesh187/recipe-sharing-platform/pkg/health"
	"github.com/prabesh187/recipe-sharing-platform/pkg/middleware"
)

// NewRouter creates a chi router with all recipe service routes registered.
func NewRouter(
	recipeService *service.RecipeService,
	recommendationService *service.RecommendationService,
	healthHandler *health.Handler,
	corsConfig middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("recipe-service"))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	recipeHandler := NewRecipeHandler(recipeService, logger)

	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", recipeHandler.ListRecipes)
		r.Post("/", recipeHandler.CreateRecipe)
		r.Get("/{idOrSlug}", recipeHandler.GetRecipe)
		r.Put("/{id}", recipeHandler.UpdateRecipe)
		r.Delete("/{id}", recipeHandler.DeleteRecipe)

		r.Post("/{id}/views", recipeHandler.RecordView)
		r.Post("/{id}/favorite", recipeHandler.FavoriteRecipe)
		r.Delete("/{id}/favorite", recipeHandler.UnfavoriteRecipe)
		r.Post("/{id}/ratings", recipeHandler.RateRecipe)
		r.Get("/{id}/ratings", recipeHandler.ListRatings)
	})

	recommendationHandler := NewRecommendationHandler(recommendationService, logger)

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Get("/for-you", recommendationHandler.ForYou)
		r.Get("/trending", recommendationHandler.Trending)
		r.Get("/similar/{recipeId}", recommendationHandler.Similar)
	})

	preferenceHandler := NewPreferenceHandler(recommendationService, logger)

	r.Route("/api/v1/users/me/preferences", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", preferenceHandler.GetPreferences)
		r.Put("/", preferenceHandler.UpdatePreferences)
	})

	return r
}
