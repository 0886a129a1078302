package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// fakeAccounts answers every call with a fixed account.
type fakeAccounts struct{ kind domain.Kind }

func (f fakeAccounts) Kind() domain.Kind { return f.kind }
func (f fakeAccounts) Create(context.Context, ports.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: 1}, nil
}
func (f fakeAccounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	if id != 1 {
		return nil, domain.AccountNotFound(f.kind, id)
	}
	return &domain.Account{ID: 1}, nil
}
func (f fakeAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	return &domain.Account{ID: 1, Email: email}, nil
}
func (f fakeAccounts) GetAll(context.Context) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}
func (f fakeAccounts) Update(context.Context, int64, ports.UpdateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: 1}, nil
}
func (f fakeAccounts) Delete(context.Context, int64) error { return nil }

type fakeRecommendations struct{ ports.RecommendationService }

func (fakeRecommendations) GetAll(context.Context) ([]*domain.HelperRecommendation, error) {
	return []*domain.HelperRecommendation{}, nil
}

func newTestRouter(authDisabled bool) http.Handler {
	accounts := make(map[domain.Kind]ports.AccountService, len(domain.Kinds))
	for _, k := range domain.Kinds {
		accounts[k] = fakeAccounts{kind: k}
	}
	return NewRouter(Deps{
		Accounts:        accounts,
		Recommendations: fakeRecommendations{},
		JWTSecret:       "secret",
		AuthDisabled:    authDisabled,
		Logger:          zerolog.Nop(),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "role": role}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func serve(h http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(false)
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := serve(h, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_KindRoutes(t *testing.T) {
	h := newTestRouter(false)
	token := bearer(t, domain.RoleAdmin)

	for _, k := range domain.Kinds {
		rec := serve(h, http.MethodGet, "/v1/"+k.Path(), token)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", k, rec.Code)
		}
	}

	rec := serve(h, http.MethodGet, "/v1/super-admins/by-email?email=s@example.com", token)
	if rec.Code != http.StatusOK {
		t.Errorf("by-email: expected 200, got %d", rec.Code)
	}

	rec = serve(h, http.MethodGet, "/v1/users/2", token)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "ACCOUNT_NOT_FOUND") {
		t.Errorf("expected 404 envelope, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AuthAndRoles(t *testing.T) {
	h := newTestRouter(false)

	if rec := serve(h, http.MethodGet, "/v1/users", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/v1/users", bearer(t, domain.RoleUser)); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for user role, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/v1/admins", bearer(t, domain.RoleUser)); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 on admins for user role, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/v1/helper-recommendations", bearer(t, domain.RoleHelper)); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 on review list for helper role, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/v1/helper-recommendations", bearer(t, domain.RoleSuperAdmin)); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for superadmin, got %d", rec.Code)
	}
}

func TestRouter_AuthDisabled(t *testing.T) {
	h := newTestRouter(true)
	if rec := serve(h, http.MethodGet, "/v1/admins", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200 with auth disabled, got %d", rec.Code)
	}
}
