package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// CreateRecommendationInput is raised by a user proposing a new helper.
type CreateRecommendationInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UserID    int64
}

// UpdateRecommendationInput carries a partial update; nil fields are not changed.
type UpdateRecommendationInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Status    *domain.RecommendationStatus
	Notes     *string
}

// ApprovalResult is everything the approval touched.
type ApprovalResult struct {
	Helper         *domain.Account              `json:"helper"`
	Recommendation *domain.HelperRecommendation `json:"recommendation"`
	User           *domain.Account              `json:"helperUser"`
}

// RecommendationService manages the helper recommendation lifecycle.
type RecommendationService interface {
	Create(ctx context.Context, input CreateRecommendationInput) (*domain.HelperRecommendation, error)
	GetByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error)
	GetAll(ctx context.Context) ([]*domain.HelperRecommendation, error)
	Update(ctx context.Context, id int64, input UpdateRecommendationInput) (*domain.HelperRecommendation, error)
	Approve(ctx context.Context, id int64, password string) (*ApprovalResult, error)
	Reject(ctx context.Context, id int64, notes string) (*domain.HelperRecommendation, error)
	Delete(ctx context.Context, id int64) error
}
