package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Store-level sentinels. Persistence adapters return these; services translate
// them into *Error values before they reach a caller.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Error kinds. Match them with errors.Is on any *Error.
var (
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrCreationFailed = errors.New("creation failed")
	ErrFetchFailed    = errors.New("fetch failed")
	ErrUpdateFailed   = errors.New("update failed")
	ErrDeletionFailed = errors.New("deletion failed")
	ErrForbidden      = errors.New("forbidden")
)

// Error is the structured error returned by every service operation.
type Error struct {
	Kind    error
	Code    string
	Status  int
	Message string
	Details map[string]any
	Origin  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsDomainError reports whether err carries one of the three domain-check
// kinds, which must pass through any wrapping layer unchanged.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidState)
}

// --- Account errors ---

func AccountAlreadyExists(kind Kind, identifier any) *Error {
	return &Error{
		Kind:    ErrAlreadyExists,
		Code:    "ACCOUNT_ALREADY_EXISTS",
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("%s account with identifier '%v' already exists.", kind.Label(), identifier),
		Details: map[string]any{"role": kind.Label(), "identifier": identifier},
		Origin:  "AccountService.create",
	}
}

func AccountNotFound(kind Kind, identifier any) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Code:    "ACCOUNT_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s account with identifier '%v' not found.", kind.Label(), identifier),
		Details: map[string]any{"role": kind.Label(), "identifier": identifier},
		Origin:  "AccountService",
	}
}

func AccountCreationFailed(kind Kind, cause error) *Error {
	return &Error{
		Kind:    ErrCreationFailed,
		Code:    "ACCOUNT_CREATION_FAILED",
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to create %s account due to internal error.", kind.Label()),
		Origin:  "AccountService.create",
		Err:     cause,
	}
}

// AccountFetchFailed builds a fetch error. identifier may be nil for list calls.
func AccountFetchFailed(kind Kind, identifier any, cause error) *Error {
	msg := fmt.Sprintf("Failed to fetch %s accounts.", kind.Label())
	if identifier != nil {
		msg = fmt.Sprintf("Failed to fetch %s account with identifier '%v'.", kind.Label(), identifier)
	}
	return &Error{
		Kind:    ErrFetchFailed,
		Code:    "ACCOUNT_FETCH_FAILED",
		Status:  http.StatusInternalServerError,
		Message: msg,
		Origin:  "AccountService.fetch",
		Err:     cause,
	}
}

func AccountUpdateFailed(kind Kind, identifier any, cause error) *Error {
	return &Error{
		Kind:    ErrUpdateFailed,
		Code:    "ACCOUNT_UPDATE_FAILED",
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to update %s account with identifier '%v'.", kind.Label(), identifier),
		Origin:  "AccountService.update",
		Err:     cause,
	}
}

func AccountDeletionFailed(kind Kind, identifier any, cause error) *Error {
	return &Error{
		Kind:    ErrDeletionFailed,
		Code:    "ACCOUNT_DELETION_FAILED",
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to delete %s account with identifier '%v'.", kind.Label(), identifier),
		Origin:  "AccountService.delete",
		Err:     cause,
	}
}

// --- Helper recommendation errors ---

const recommendationLabel = "Helper recommendation"

func RecommendationAlreadyExists(email string, reason string) *Error {
	return &Error{
		Kind:    ErrAlreadyExists,
		Code:    "RECOMMENDATION_ALREADY_EXISTS",
		Status:  http.StatusConflict,
		Message: reason,
		Details: map[string]any{"email": email},
		Origin:  "RecommendationService.create",
	}
}

func RecommendationNotFound(id int64, origin string) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Code:    "RECOMMENDATION_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s with identifier '%d' not found.", recommendationLabel, id),
		Details: map[string]any{"identifier": id},
		Origin:  origin,
	}
}

func RecommendationNotPending(id int64, status RecommendationStatus) *Error {
	return &Error{
		Kind:    ErrInvalidState,
		Code:    "RECOMMENDATION_NOT_PENDING",
		Status:  http.StatusConflict,
		Message: "Recommendation is not in pending status",
		Details: map[string]any{"identifier": id, "status": string(status)},
		Origin:  "RecommendationService.approve",
	}
}

// AccessDenied is returned when the caller's role may not use a route.
func AccessDenied(role string, allowed []string) *Error {
	return &Error{
		Kind:    ErrForbidden,
		Code:    "ACCESS_DENIED",
		Status:  http.StatusForbidden,
		Message: "Your role does not allow this operation",
		Details: map[string]any{"role": role, "allowed": allowed},
		Origin:  "middleware.rbac",
	}
}

// RecommendationInvalidTransition is returned when a generic update tries to
// move a recommendation to another status. Approve and reject own status changes.
func RecommendationInvalidTransition(id int64, from, to RecommendationStatus) *Error {
	return &Error{
		Kind:    ErrInvalidState,
		Code:    "RECOMMENDATION_INVALID_TRANSITION",
		Status:  http.StatusConflict,
		Message: "Recommendation status can only change through approve or reject",
		Details: map[string]any{"identifier": id, "from": string(from), "to": string(to)},
		Origin:  "RecommendationService.update",
	}
}

// RecommendationApprovalInProgress is returned while another caller holds the
// approval of the same recommendation.
func RecommendationApprovalInProgress(id int64) *Error {
	return &Error{
		Kind:    ErrInvalidState,
		Code:    "RECOMMENDATION_APPROVAL_IN_PROGRESS",
		Status:  http.StatusConflict,
		Message: "Recommendation approval is already in progress",
		Details: map[string]any{"identifier": id},
		Origin:  "RecommendationService.approve",
	}
}

// RecommendationFailed wraps an unexpected failure of a recommendation
// operation into the kind matching the operation.
func RecommendationFailed(kind error, origin string, id int64, cause error) *Error {
	code, verb := "RECOMMENDATION_FETCH_FAILED", "fetch"
	switch kind {
	case ErrCreationFailed:
		code, verb = "RECOMMENDATION_CREATION_FAILED", "create"
	case ErrUpdateFailed:
		code, verb = "RECOMMENDATION_UPDATE_FAILED", "update"
	case ErrDeletionFailed:
		code, verb = "RECOMMENDATION_DELETION_FAILED", "delete"
	}
	msg := fmt.Sprintf("Failed to %s %s.", verb, recommendationLabel)
	if id > 0 {
		msg = fmt.Sprintf("Failed to %s %s with identifier '%d'.", verb, recommendationLabel, id)
	}
	return &Error{
		Kind:    kind,
		Code:    code,
		Status:  http.StatusInternalServerError,
		Message: msg,
		Origin:  origin,
		Err:     cause,
	}
}

// --- User action errors ---

func UserActionFailed(kind error, origin string, userID int64, cause error) *Error {
	code := "USER_ACTION_CREATE_ERROR"
	if kind == ErrFetchFailed {
		code = "USER_ACTION_FETCH_ERROR"
	}
	return &Error{
		Kind:    kind,
		Code:    code,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to process actions of user '%d'.", userID),
		Origin:  origin,
		Err:     cause,
	}
}
