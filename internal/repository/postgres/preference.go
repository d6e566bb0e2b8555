package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
	"github.com/prabesh187/recipe-sharing-platform/pkg/database"
)

// PreferenceRepository implements user preference persistence using PostgreSQL.
type PreferenceRepository struct {
	db database.DBTX
}

// NewPreferenceRepository creates a new PostgreSQL-backed preference repository.
func NewPreferenceRepository(db database.DBTX) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get retrieves a user's declared preferences. A user with no stored row
// yields an empty Preferences value, not an error.
func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	query := `
		SELECT user_id, dietary_tags, cuisines, updated_at
		FROM user_preferences
		WHERE user_id = $1`

	var prefs domain.Preferences

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.DietaryTags,
		&prefs.Cuisines,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Preferences{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	return &prefs, nil
}

// Put stores (or replaces) a user's declared preferences.
func (r *PreferenceRepository) Put(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		INSERT INTO user_preferences (user_id, dietary_tags, cuisines, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET dietary_tags = EXCLUDED.dietary_tags,
		              cuisines = EXCLUDED.cuisines,
		              updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		prefs.UserID,
		prefs.DietaryTags,
		prefs.Cuisines,
		prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}

	return nil
}
