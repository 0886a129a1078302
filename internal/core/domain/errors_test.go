package domain

import (
	"errors"
	"net/http"
	"testing"
)

func TestError_UnwrapsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := AccountCreationFailed(KindHelper, cause)

	if !errors.Is(err, ErrCreationFailed) {
		t.Errorf("expected the kind to match")
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the cause to match")
	}
	if IsDomainError(err) {
		t.Errorf("a failure must not count as a domain error")
	}
	if err.Status != http.StatusInternalServerError {
		t.Errorf("unexpected status %d", err.Status)
	}
}

func TestIsDomainError(t *testing.T) {
	for _, err := range []error{
		AccountAlreadyExists(KindUser, "a@example.com"),
		AccountNotFound(KindAdmin, 1),
		RecommendationNotPending(7, RecommendationApproved),
		RecommendationApprovalInProgress(7),
		RecommendationInvalidTransition(7, RecommendationApproved, RecommendationPending),
	} {
		if !IsDomainError(err) {
			t.Errorf("%v should be a domain error", err)
		}
	}
	if IsDomainError(errors.New("plain")) {
		t.Errorf("plain errors are not domain errors")
	}
}

func TestError_Messages(t *testing.T) {
	err := AccountAlreadyExists(KindCommercial, "c@example.com")
	if err.Message != "Commercial account with identifier 'c@example.com' already exists." {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["role"] != "Commercial" || err.Origin != "AccountService.create" {
		t.Errorf("unexpected details: %+v %s", err.Details, err.Origin)
	}

	failed := RecommendationFailed(ErrUpdateFailed, "RecommendationService.update", 4, errors.New("x"))
	if failed.Code != "RECOMMENDATION_UPDATE_FAILED" || !errors.Is(failed, ErrUpdateFailed) {
		t.Errorf("unexpected recommendation failure: %+v", failed)
	}
}
