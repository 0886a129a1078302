package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

func TestPasswordLengthLimit(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"ascii over 72 bytes", strings.Repeat("a", 80), http.StatusUnprocessableEntity},
		{"multibyte over 72 bytes", strings.Repeat("é", 40), http.StatusUnprocessableEntity},
		{"exactly 72 bytes", strings.Repeat("a", 72), 0},
	}

	accounts := &stubAccountService{
		kind: domain.KindHelper,
		createFn: func(context.Context, ports.CreateAccountInput) (*domain.Account, error) {
			return &domain.Account{ID: 1}, nil
		},
		updateFn: func(_ context.Context, id int64, _ ports.UpdateAccountInput) (*domain.Account, error) {
			return &domain.Account{ID: id}, nil
		},
	}
	recs := &stubRecommendationService{
		approveFn: func(context.Context, int64, string) (*ports.ApprovalResult, error) {
			return &ports.ApprovalResult{}, nil
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw := `"` + tt.password + `"`

			c, _ := newContext(http.MethodPost, "/",
				`{"first_name":"H","last_name":"L","email":"h@example.com","password":`+pw+`}`)
			if got := httpStatus(NewAccountHandler(accounts).Create(c)); got != tt.want {
				t.Errorf("create: expected %d, got %d", tt.want, got)
			}

			c, _ = newContext(http.MethodPut, "/", `{"password":`+pw+`}`, "id", "1")
			if got := httpStatus(NewAccountHandler(accounts).Update(c)); got != tt.want {
				t.Errorf("update: expected %d, got %d", tt.want, got)
			}

			c, _ = newContext(http.MethodPost, "/", `{"password":`+pw+`}`, "id", "7")
			if got := httpStatus(NewRecommendationHandler(recs).Approve(c)); got != tt.want {
				t.Errorf("approve: expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	err := NewValidator().Validate(&createAccountRequest{
		FirstName: "A", LastName: "B", Email: "a@example.com", Password: strings.Repeat("x", 73),
	})
	if err == nil || err.Error() != "password must be at most 72 bytes" {
		t.Fatalf("unexpected error: %v", err)
	}
}
