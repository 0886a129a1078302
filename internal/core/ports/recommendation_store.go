package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// RecommendationStore persists helper recommendations.
type RecommendationStore interface {
	Create(ctx context.Context, rec *domain.HelperRecommendation) (*domain.HelperRecommendation, error)
	// FindByID returns the recommendation with its owning user embedded.
	FindByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error)
	// FindPendingByEmail only matches recommendations still in pending status.
	FindPendingByEmail(ctx context.Context, email string) (*domain.HelperRecommendation, error)
	// List returns every recommendation, newest first, owning user embedded.
	List(ctx context.Context) ([]*domain.HelperRecommendation, error)
	Update(ctx context.Context, id int64, patch domain.RecommendationPatch) (*domain.HelperRecommendation, error)
	Delete(ctx context.Context, id int64) error
}
