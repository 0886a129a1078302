package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
	"github.com/SoftGuar/Account-Management-Service/internal/metrics"
	"github.com/SoftGuar/Account-Management-Service/pkg/logger"
)

const recommendationKind = "recommendation"

// RecommendationService drives the helper recommendation lifecycle. Approval
// spans three stores and runs as a saga: each completed step is undone when a
// later one fails.
type RecommendationService struct {
	store   ports.RecommendationStore
	helpers ports.AccountService
	users   ports.UserService
	locker  ports.Locker
	actions ports.ActionRecorder
	logger  zerolog.Logger
}

func NewRecommendationService(
	store ports.RecommendationStore,
	helpers ports.AccountService,
	users ports.UserService,
	locker ports.Locker,
	actions ports.ActionRecorder,
	logger zerolog.Logger,
) *RecommendationService {
	if locker == nil {
		locker = NoopLocker{}
	}
	if actions == nil {
		actions = discardRecorder{}
	}
	return &RecommendationService{
		store:   store,
		helpers: helpers,
		users:   users,
		locker:  locker,
		actions: actions,
		logger:  logger.With().Str("kind", recommendationKind).Logger(),
	}
}

// Create raises a pending recommendation. The email must belong neither to a
// Helper account nor to another pending recommendation.
func (s *RecommendationService) Create(ctx context.Context, input ports.CreateRecommendationInput) (*domain.HelperRecommendation, error) {
	const origin = "RecommendationService.create"

	input.Email = domain.NormalizeEmail(input.Email)
	release, err := s.locker.Lock(ctx, "recommendation:email:"+input.Email)
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			return nil, s.fail(domain.RecommendationAlreadyExists(input.Email, "A recommendation for this email is already being created"))
		}
		return nil, s.fail(domain.RecommendationFailed(domain.ErrCreationFailed, origin, 0, fmt.Errorf("acquire lock: %w", err)))
	}
	defer s.release(release)

	_, err = s.helpers.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, s.fail(domain.RecommendationAlreadyExists(input.Email, "A helper account with this email already exists"))
	case !errors.Is(err, domain.ErrNotFound):
		return nil, s.fail(domain.RecommendationFailed(domain.ErrCreationFailed, origin, 0, err))
	}

	pending, err := s.store.FindPendingByEmail(ctx, input.Email)
	switch {
	case err == nil && pending != nil:
		return nil, s.fail(domain.RecommendationAlreadyExists(input.Email, "A pending recommendation for this email already exists"))
	case err != nil && !errors.Is(err, domain.ErrRecordNotFound):
		return nil, s.fail(domain.RecommendationFailed(domain.ErrCreationFailed, origin, 0, err))
	}

	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		return nil, s.fail(domain.RecommendationFailed(domain.ErrCreationFailed, origin, 0, err))
	}

	now := time.Now().UTC()
	created, err := s.store.Create(ctx, &domain.HelperRecommendation{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		UserID:    input.UserID,
		Status:    domain.RecommendationPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.fail(domain.RecommendationFailed(domain.ErrCreationFailed, origin, 0, err))
	}

	metrics.RecommendationTransitionsTotal.WithLabelValues(string(domain.RecommendationPending)).Inc()
	s.actions.Record(created.UserID, domain.ActionRecommendationCreated)
	s.logger.Info().Int64("id", created.ID).Int64("user_id", created.UserID).
		Str("email", logger.RedactEmail(created.Email)).Msg("recommendation created")
	return created, nil
}

func (s *RecommendationService) GetByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error) {
	return s.find(ctx, id, "RecommendationService.getById", domain.ErrFetchFailed)
}

// GetAll returns every recommendation, newest first.
func (s *RecommendationService) GetAll(ctx context.Context) ([]*domain.HelperRecommendation, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(domain.RecommendationFailed(domain.ErrFetchFailed, "RecommendationService.getAll", 0, err))
	}
	if recs == nil {
		recs = []*domain.HelperRecommendation{}
	}
	return recs, nil
}

func (s *RecommendationService) Update(ctx context.Context, id int64, input ports.UpdateRecommendationInput) (*domain.HelperRecommendation, error) {
	const origin = "RecommendationService.update"

	existing, err := s.find(ctx, id, origin, domain.ErrUpdateFailed)
	if err != nil {
		return nil, err
	}
	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		input.Email = &email
	}
	if input.Status != nil && *input.Status != existing.Status {
		return nil, s.fail(domain.RecommendationInvalidTransition(id, existing.Status, *input.Status))
	}
	patch := domain.RecommendationPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
	}
	if patch == (domain.RecommendationPatch{}) {
		return existing, nil
	}
	return s.update(ctx, id, patch, origin)
}

// Approve provisions a Helper account from a pending recommendation, links it
// to the requesting user and marks the recommendation approved.
//
// Steps run in order; on failure the completed ones are compensated:
//
//	create helper → link to user → mark approved
//	                  ↳ delete helper  ↳ unlink, delete helper
func (s *RecommendationService) Approve(ctx context.Context, id int64, password string) (*ports.ApprovalResult, error) {
	const origin = "RecommendationService.approve"
	start := time.Now()

	result, err := s.approve(ctx, id, password, origin)

	outcome := "approved"
	if err != nil {
		outcome = "error"
	}
	metrics.ApprovalDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return result, err
}

func (s *RecommendationService) approve(ctx context.Context, id int64, password, origin string) (*ports.ApprovalResult, error) {
	release, err := s.locker.Lock(ctx, fmt.Sprintf("recommendation:approve:%d", id))
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			return nil, s.fail(domain.RecommendationApprovalInProgress(id))
		}
		return nil, s.fail(domain.RecommendationFailed(domain.ErrUpdateFailed, origin, id, fmt.Errorf("acquire lock: %w", err)))
	}
	defer s.release(release)

	rec, err := s.find(ctx, id, origin, domain.ErrFetchFailed)
	if err != nil {
		return nil, err
	}
	if !rec.Status.CanTransitionTo(domain.RecommendationApproved) {
		return nil, s.fail(domain.RecommendationNotPending(id, rec.Status))
	}

	saga := s.logger.With().Str("saga_id", uuid.NewString()).Int64("recommendation_id", id).Logger()

	helper, err := s.helpers.Create(ctx, ports.CreateAccountInput{
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Password:  password,
		Phone:     rec.Phone,
	})
	if err != nil {
		saga.Warn().Err(err).Msg("approval aborted: helper creation failed")
		return nil, err
	}

	user, err := s.users.AddHelperToUser(ctx, rec.UserID, helper.ID)
	if err != nil {
		saga.Warn().Err(err).Int64("helper_id", helper.ID).Msg("approval aborted: link failed")
		s.compensateDeleteHelper(ctx, saga, helper.ID)
		return nil, err
	}

	status := domain.RecommendationApproved
	updated, err := s.store.Update(ctx, id, domain.RecommendationPatch{Status: &status})
	if err != nil {
		saga.Warn().Err(err).Int64("helper_id", helper.ID).Msg("approval aborted: status update failed")
		s.compensateUnlink(ctx, saga, rec.UserID, helper.ID)
		s.compensateDeleteHelper(ctx, saga, helper.ID)
		return nil, s.fail(domain.RecommendationFailed(domain.ErrUpdateFailed, origin, id, err))
	}
	if updated.User == nil {
		updated.User = user
	}

	metrics.RecommendationTransitionsTotal.WithLabelValues(string(domain.RecommendationApproved)).Inc()
	s.actions.Record(rec.UserID, domain.ActionRecommendationApproved)
	saga.Info().Int64("helper_id", helper.ID).Int64("user_id", rec.UserID).Msg("recommendation approved")

	return &ports.ApprovalResult{Helper: helper, Recommendation: updated, User: user}, nil
}

// Reject marks the recommendation rejected and appends the note, if any, to
// the existing notes. Records in any status may be rejected.
func (s *RecommendationService) Reject(ctx context.Context, id int64, notes string) (*domain.HelperRecommendation, error) {
	const origin = "RecommendationService.reject"

	rec, err := s.find(ctx, id, origin, domain.ErrFetchFailed)
	if err != nil {
		return nil, err
	}

	status := domain.RecommendationRejected
	merged := domain.RejectionNotes(rec.Notes, notes)
	updated, err := s.update(ctx, id, domain.RecommendationPatch{Status: &status, Notes: &merged}, origin)
	if err != nil {
		return nil, err
	}

	metrics.RecommendationTransitionsTotal.WithLabelValues(string(domain.RecommendationRejected)).Inc()
	s.actions.Record(rec.UserID, domain.ActionRecommendationRejected)
	s.logger.Info().Int64("id", id).Str("previous_status", string(rec.Status)).Msg("recommendation rejected")
	return updated, nil
}

// Delete removes the recommendation regardless of its status.
func (s *RecommendationService) Delete(ctx context.Context, id int64) error {
	const origin = "RecommendationService.delete"

	if _, err := s.find(ctx, id, origin, domain.ErrDeletionFailed); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return s.fail(domain.RecommendationNotFound(id, origin))
		}
		return s.fail(domain.RecommendationFailed(domain.ErrDeletionFailed, origin, id, err))
	}
	s.logger.Info().Int64("id", id).Msg("recommendation deleted")
	return nil
}

func (s *RecommendationService) find(ctx context.Context, id int64, origin string, failKind error) (*domain.HelperRecommendation, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, s.fail(domain.RecommendationNotFound(id, origin))
		}
		return nil, s.fail(domain.RecommendationFailed(failKind, origin, id, err))
	}
	return rec, nil
}

func (s *RecommendationService) update(ctx context.Context, id int64, patch domain.RecommendationPatch, origin string) (*domain.HelperRecommendation, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, s.fail(domain.RecommendationNotFound(id, origin))
		}
		return nil, s.fail(domain.RecommendationFailed(domain.ErrUpdateFailed, origin, id, err))
	}
	return updated, nil
}

// Compensations run detached from the request context so a cancelled request
// still rolls back.

func (s *RecommendationService) compensateDeleteHelper(ctx context.Context, log zerolog.Logger, helperID int64) {
	err := s.helpers.Delete(context.WithoutCancel(ctx), helperID)
	s.compensated(log, "delete_helper", helperID, err)
}

func (s *RecommendationService) compensateUnlink(ctx context.Context, log zerolog.Logger, userID, helperID int64) {
	_, err := s.users.RemoveHelperFromUser(context.WithoutCancel(ctx), userID, helperID)
	s.compensated(log, "unlink_helper", helperID, err)
}

func (s *RecommendationService) compensated(log zerolog.Logger, step string, helperID int64, err error) {
	if err != nil {
		metrics.ApprovalCompensationsTotal.WithLabelValues(step, "failed").Inc()
		log.Error().Err(err).Str("step", step).Int64("helper_id", helperID).Msg("compensation failed")
		return
	}
	metrics.ApprovalCompensationsTotal.WithLabelValues(step, "ok").Inc()
	log.Info().Str("step", step).Int64("helper_id", helperID).Msg("compensation applied")
}

func (s *RecommendationService) release(release func(context.Context) error) {
	if err := release(context.Background()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to release lock")
	}
}

func (s *RecommendationService) fail(e *domain.Error) *domain.Error {
	return recordError(s.logger, recommendationKind, e)
}

type discardRecorder struct{}

func (discardRecorder) Record(int64, string) {}
