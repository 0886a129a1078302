package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
	"github.com/SoftGuar/Account-Management-Service/internal/metrics"
	"github.com/SoftGuar/Account-Management-Service/pkg/logger"
)

// AccountService implements ports.AccountService for a single account kind.
// One instance is built per kind; they differ only in kind and store.
type AccountService struct {
	kind   domain.Kind
	store  ports.AccountStore
	hasher ports.PasswordHasher
	locker ports.Locker
	logger zerolog.Logger
}

// NewAccountService builds the service for kind. A nil locker disables
// cross-process locking of the email uniqueness check.
func NewAccountService(kind domain.Kind, store ports.AccountStore, hasher ports.PasswordHasher, locker ports.Locker, log zerolog.Logger) *AccountService {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &AccountService{
		kind:   kind,
		store:  store,
		hasher: hasher,
		locker: locker,
		logger: log.With().Str("kind", string(kind)).Logger(),
	}
}

func (s *AccountService) Kind() domain.Kind { return s.kind }

// Create registers a new account. The email must not be used by another
// account of the same kind.
func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	release, err := s.locker.Lock(ctx, s.emailLockKey(input.Email))
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			return nil, s.fail(domain.AccountAlreadyExists(s.kind, input.Email))
		}
		return nil, s.fail(domain.AccountCreationFailed(s.kind, fmt.Errorf("acquire lock: %w", err)))
	}
	defer s.release(release)

	existing, err := s.store.FindByEmail(ctx, input.Email)
	switch {
	case err == nil && existing != nil:
		return nil, s.fail(domain.AccountAlreadyExists(s.kind, input.Email))
	case err != nil && !errors.Is(err, domain.ErrRecordNotFound):
		return nil, s.fail(domain.AccountCreationFailed(s.kind, err))
	}

	digest, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, s.fail(domain.AccountCreationFailed(s.kind, fmt.Errorf("hash password: %w", err)))
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Kind:         s.kind,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: digest,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.kind.RequiresPrivilege() {
		account.Privilege = input.Privilege
		account.AddedBy = input.AddedBy
	}
	if s.kind.RequiresRole() {
		account.Role = input.Role
	}

	created, err := s.store.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, s.fail(domain.AccountAlreadyExists(s.kind, input.Email))
		}
		return nil, s.fail(domain.AccountCreationFailed(s.kind, err))
	}

	metrics.AccountsCreatedTotal.WithLabelValues(string(s.kind)).Inc()
	s.logger.Info().Int64("id", created.ID).Str("email", logger.RedactEmail(created.Email)).Msg("account created")
	return created, nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, s.fail(domain.AccountNotFound(s.kind, id))
		}
		return nil, s.fail(domain.AccountFetchFailed(s.kind, id, err))
	}
	return account, nil
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, s.fail(domain.AccountNotFound(s.kind, email))
		}
		return nil, s.fail(domain.AccountFetchFailed(s.kind, email, err))
	}
	return account, nil
}

func (s *AccountService) GetAll(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(domain.AccountFetchFailed(s.kind, nil, err))
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}
	return accounts, nil
}

// Update applies a partial update. A new password is re-hashed; the stored
// digest is untouched when no password is given.
func (s *AccountService) Update(ctx context.Context, id int64, input ports.UpdateAccountInput) (*domain.Account, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, s.fail(domain.AccountNotFound(s.kind, id))
		}
		return nil, s.fail(domain.AccountUpdateFailed(s.kind, id, err))
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		input.Email = &email
	}
	patch := domain.AccountPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}
	if s.kind.RequiresPrivilege() {
		patch.Privilege = input.Privilege
		patch.AddedBy = input.AddedBy
	}
	if s.kind.RequiresRole() {
		patch.Role = input.Role
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(ctx, *input.Password)
		if err != nil {
			return nil, s.fail(domain.AccountUpdateFailed(s.kind, id, fmt.Errorf("hash password: %w", err)))
		}
		patch.PasswordHash = &digest
	}
	if patch.Empty() {
		return existing, nil
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, s.fail(domain.AccountNotFound(s.kind, id))
		case errors.Is(err, domain.ErrDuplicateEmail) && input.Email != nil:
			return nil, s.fail(domain.AccountAlreadyExists(s.kind, *input.Email))
		}
		return nil, s.fail(domain.AccountUpdateFailed(s.kind, id, err))
	}

	s.logger.Info().Int64("id", id).Msg("account updated")
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return s.fail(domain.AccountNotFound(s.kind, id))
		}
		return s.fail(domain.AccountDeletionFailed(s.kind, id, err))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return s.fail(domain.AccountNotFound(s.kind, id))
		}
		return s.fail(domain.AccountDeletionFailed(s.kind, id, err))
	}

	metrics.AccountsDeletedTotal.WithLabelValues(string(s.kind)).Inc()
	s.logger.Info().Int64("id", id).Msg("account deleted")
	return nil
}

func (s *AccountService) emailLockKey(email string) string {
	return "account:" + string(s.kind) + ":" + email
}

func (s *AccountService) release(release func(context.Context) error) {
	if err := release(context.Background()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to release lock")
	}
}

// fail counts and logs e before handing it back to the caller.
func (s *AccountService) fail(e *domain.Error) *domain.Error {
	return recordError(s.logger, string(s.kind), e)
}

// recordError is shared by every service to count errors by code and log
// unexpected failures at error level.
func recordError(log zerolog.Logger, kind string, e *domain.Error) *domain.Error {
	metrics.AccountErrorsTotal.WithLabelValues(kind, e.Code).Inc()
	if domain.IsDomainError(e) {
		log.Debug().Str("code", e.Code).Msg(e.Message)
	} else {
		log.Error().Err(e.Err).Str("code", e.Code).Str("origin", e.Origin).Msg(e.Message)
	}
	return e
}
