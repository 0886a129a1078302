package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

func TestMetrics_PassesErrorThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/users/:id")

	want := domain.AccountNotFound(domain.KindUser, 9)
	handler := Metrics()(func(c echo.Context) error { return want })

	if err := handler(c); err != want {
		t.Fatalf("expected the handler error back, got %v", err)
	}
}

func TestResponseStatus(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Response().WriteHeader(http.StatusCreated)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no error uses written status", nil, http.StatusCreated},
		{"domain error", domain.AccountNotFound(domain.KindHelper, 1), http.StatusNotFound},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad"), http.StatusBadRequest},
		{"unknown error", errTest, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseStatus(c, tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")
