package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

func staffOnly(t *testing.T, role string) (bool, error) {
	t.Helper()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if role != "" {
		c.Set(ContextRole, role)
	}

	called := false
	err := RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestRBAC_AllowsStaff(t *testing.T) {
	for _, role := range []string{domain.RoleAdmin, domain.RoleSuperAdmin} {
		called, err := staffOnly(t, role)
		require.NoError(t, err, role)
		assert.True(t, called, role)
	}
}

func TestRBAC_DeniesOtherRoles(t *testing.T) {
	called, err := staffOnly(t, domain.RoleUser)
	assert.False(t, called)

	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %v", err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, de.Status)
	assert.Equal(t, "ACCESS_DENIED", de.Code)
	assert.Equal(t, domain.RoleUser, de.Details["role"])
}

func TestRBAC_MissingRoleIsUnauthorized(t *testing.T) {
	called, err := staffOnly(t, "")
	assert.False(t, called)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
