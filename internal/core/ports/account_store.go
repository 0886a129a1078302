package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// AccountStore is the persistence contract of one account kind.
// Lookups return domain.ErrRecordNotFound when nothing matches; Create and
// Update return domain.ErrDuplicateEmail when the store rejects the email.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, id int64, patch domain.AccountPatch) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore adds the user↔helper association to the user collection.
type UserStore interface {
	AccountStore

	// AddHelper links helperID to userID and returns the user with its helpers.
	AddHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	// RemoveHelper unlinks helperID from userID and returns the user with its helpers.
	RemoveHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	// Helpers returns the helpers linked to userID, or domain.ErrRecordNotFound
	// when the user does not exist.
	Helpers(ctx context.Context, userID int64) ([]*domain.Account, error)
}
