package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// UserActionStore is the append-only audit log. There is no update or delete.
type UserActionStore interface {
	Append(ctx context.Context, action *domain.UserAction) (*domain.UserAction, error)
	// ListByUser returns the user's actions, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error)
}
