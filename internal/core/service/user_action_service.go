package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

const userActionKind = "user_action"

type UserActionService struct {
	store  ports.UserActionStore
	logger zerolog.Logger
}

func NewUserActionService(store ports.UserActionStore, logger zerolog.Logger) *UserActionService {
	return &UserActionService{store: store, logger: logger}
}

func (s *UserActionService) Add(ctx context.Context, userID int64, action string) (*domain.UserAction, error) {
	created, err := s.store.Append(ctx, &domain.UserAction{
		UserID:    userID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, recordError(s.logger, userActionKind,
			domain.UserActionFailed(domain.ErrCreationFailed, "UserActionService.add", userID, err))
	}
	s.logger.Debug().Int64("user_id", userID).Str("action", action).Msg("user action recorded")
	return created, nil
}

// ListByUser returns the user's actions, newest first.
func (s *UserActionService) ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error) {
	actions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, recordError(s.logger, userActionKind,
			domain.UserActionFailed(domain.ErrFetchFailed, "UserActionService.list", userID, err))
	}
	if actions == nil {
		actions = []*domain.UserAction{}
	}
	return actions, nil
}
