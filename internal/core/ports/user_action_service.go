package ports

import (
	"context"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// UserActionService records and lists user actions.
type UserActionService interface {
	Add(ctx context.Context, userID int64, action string) (*domain.UserAction, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error)
}

// ActionRecorder records user actions without blocking the caller.
type ActionRecorder interface {
	Record(userID int64, action string)
}
