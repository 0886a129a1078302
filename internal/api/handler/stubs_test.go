package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

type stubAccountService struct {
	kind       domain.Kind
	createFn   func(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error)
	getFn      func(ctx context.Context, id int64) (*domain.Account, error)
	getEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	listFn     func(ctx context.Context) ([]*domain.Account, error)
	updateFn   func(ctx context.Context, id int64, input ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (s *stubAccountService) Kind() domain.Kind { return s.kind }

func (s *stubAccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *stubAccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.getEmailFn(ctx, email)
}

func (s *stubAccountService) GetAll(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) Update(ctx context.Context, id int64, input ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubAccountService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubUserService struct {
	stubAccountService
	addFn     func(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	removeFn  func(ctx context.Context, userID, helperID int64) (*domain.Account, error)
	helpersFn func(ctx context.Context, userID int64) ([]*domain.Account, error)
}

func (s *stubUserService) AddHelperToUser(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	return s.addFn(ctx, userID, helperID)
}

func (s *stubUserService) RemoveHelperFromUser(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	return s.removeFn(ctx, userID, helperID)
}

func (s *stubUserService) GetUserHelpers(ctx context.Context, userID int64) ([]*domain.Account, error) {
	return s.helpersFn(ctx, userID)
}

type stubRecommendationService struct {
	createFn  func(ctx context.Context, input ports.CreateRecommendationInput) (*domain.HelperRecommendation, error)
	getFn     func(ctx context.Context, id int64) (*domain.HelperRecommendation, error)
	listFn    func(ctx context.Context) ([]*domain.HelperRecommendation, error)
	updateFn  func(ctx context.Context, id int64, input ports.UpdateRecommendationInput) (*domain.HelperRecommendation, error)
	approveFn func(ctx context.Context, id int64, password string) (*ports.ApprovalResult, error)
	rejectFn  func(ctx context.Context, id int64, notes string) (*domain.HelperRecommendation, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (s *stubRecommendationService) Create(ctx context.Context, input ports.CreateRecommendationInput) (*domain.HelperRecommendation, error) {
	return s.createFn(ctx, input)
}

func (s *stubRecommendationService) GetByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error) {
	return s.getFn(ctx, id)
}

func (s *stubRecommendationService) GetAll(ctx context.Context) ([]*domain.HelperRecommendation, error) {
	return s.listFn(ctx)
}

func (s *stubRecommendationService) Update(ctx context.Context, id int64, input ports.UpdateRecommendationInput) (*domain.HelperRecommendation, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubRecommendationService) Approve(ctx context.Context, id int64, password string) (*ports.ApprovalResult, error) {
	return s.approveFn(ctx, id, password)
}

func (s *stubRecommendationService) Reject(ctx context.Context, id int64, notes string) (*domain.HelperRecommendation, error) {
	return s.rejectFn(ctx, id, notes)
}

func (s *stubRecommendationService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubActionService struct {
	addFn  func(ctx context.Context, userID int64, action string) (*domain.UserAction, error)
	listFn func(ctx context.Context, userID int64) ([]*domain.UserAction, error)
}

func (s *stubActionService) Add(ctx context.Context, userID int64, action string) (*domain.UserAction, error) {
	return s.addFn(ctx, userID, action)
}

func (s *stubActionService) ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error) {
	return s.listFn(ctx, userID)
}

// newContext builds an echo context for method and body. params are
// name/value pairs of path parameters.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

// httpStatus returns the status of an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
