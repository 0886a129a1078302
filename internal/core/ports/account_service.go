package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// CreateAccountInput is the DTO passed from the transport layer to AccountService.
type CreateAccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string // plaintext, hashed by the service
	Phone     string
	Privilege *int   // admin only
	AddedBy   *int64 // admin only
	Role      string // commercial / decider only
}

// UpdateAccountInput carries a partial update; nil fields are not changed.
type UpdateAccountInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string // plaintext, re-hashed by the service
	Phone     *string
	Privilege *int
	AddedBy   *int64
	Role      *string
}

// AccountService defines the use cases shared by every account kind.
type AccountService interface {
	Kind() domain.Kind
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetAll(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, id int64, input UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// UserService is AccountService plus the helper association of users.
type UserService interface {
	AccountService
	AddHelperToUser(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	RemoveHelperFromUser(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	// GetUserHelpers returns an empty slice both when the user has no helpers
	// and when the user does not exist.
	GetUserHelpers(ctx context.Context, userID int64) ([]*domain.Account, error)
}
