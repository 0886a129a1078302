package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// UserService is the User account service plus the user↔helper association.
type UserService struct {
	*AccountService
	users   ports.UserStore
	helpers ports.AccountStore
}

func NewUserService(users ports.UserStore, helpers ports.AccountStore, hasher ports.PasswordHasher, locker ports.Locker, log zerolog.Logger) *UserService {
	return &UserService{
		AccountService: NewAccountService(domain.KindUser, users, hasher, locker, log),
		users:          users,
		helpers:        helpers,
	}
}

// AddHelperToUser links helperID to userID and returns the user with its
// helpers. Linking an already linked helper is not an error.
func (s *UserService) AddHelperToUser(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if err := s.checkPair(ctx, userID, helperID, domain.AccountUpdateFailed); err != nil {
		return nil, err
	}
	user, err := s.users.AddHelper(ctx, userID, helperID)
	if err != nil {
		return nil, s.associationError(userID, err)
	}
	s.logger.Info().Int64("user_id", userID).Int64("helper_id", helperID).Msg("helper linked")
	return user, nil
}

func (s *UserService) RemoveHelperFromUser(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if err := s.checkPair(ctx, userID, helperID, domain.AccountUpdateFailed); err != nil {
		return nil, err
	}
	user, err := s.users.RemoveHelper(ctx, userID, helperID)
	if err != nil {
		return nil, s.associationError(userID, err)
	}
	s.logger.Info().Int64("user_id", userID).Int64("helper_id", helperID).Msg("helper unlinked")
	return user, nil
}

// GetUserHelpers returns an empty slice for a user without helpers and for an
// unknown user alike.
func (s *UserService) GetUserHelpers(ctx context.Context, userID int64) ([]*domain.Account, error) {
	helpers, err := s.users.Helpers(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return []*domain.Account{}, nil
		}
		return nil, s.fail(domain.AccountFetchFailed(domain.KindHelper, userID, err))
	}
	if helpers == nil {
		helpers = []*domain.Account{}
	}
	return helpers, nil
}

// checkPair confirms both ends of the association exist.
func (s *UserService) checkPair(ctx context.Context, userID, helperID int64, wrap func(domain.Kind, any, error) *domain.Error) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return s.fail(domain.AccountNotFound(domain.KindUser, userID))
		}
		return s.fail(wrap(domain.KindUser, userID, err))
	}
	if _, err := s.helpers.FindByID(ctx, helperID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return s.fail(domain.AccountNotFound(domain.KindHelper, helperID))
		}
		return s.fail(wrap(domain.KindHelper, helperID, err))
	}
	return nil
}

func (s *UserService) associationError(userID int64, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return s.fail(domain.AccountNotFound(domain.KindUser, userID))
	}
	return s.fail(domain.AccountUpdateFailed(domain.KindUser, userID, err))
}
