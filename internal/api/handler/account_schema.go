package handler

import (
	"fmt"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// --- Request types ---

type createAccountRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
	Phone     string `json:"phone"`
	Privilege *int   `json:"privilege" validate:"omitempty,gte=0"`
	AddedBy   *int64 `json:"add_by" validate:"omitempty,gt=0"`
	Role      string `json:"role"`
}

type updateAccountRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Phone     *string `json:"phone"`
	Privilege *int    `json:"privilege" validate:"omitempty,gte=0"`
	AddedBy   *int64  `json:"add_by" validate:"omitempty,gt=0"`
	Role      *string `json:"role" validate:"omitempty,min=1"`
}

// checkKindFields enforces the fields only some kinds carry on creation.
func (r createAccountRequest) checkKindFields(kind domain.Kind) error {
	if kind.RequiresPrivilege() {
		if r.Privilege == nil {
			return fmt.Errorf("privilege is required")
		}
		if r.AddedBy == nil {
			return fmt.Errorf("add_by is required")
		}
	}
	if kind.RequiresRole() && r.Role == "" {
		return fmt.Errorf("role is required")
	}
	return nil
}

func (r createAccountRequest) toInput() ports.CreateAccountInput {
	return ports.CreateAccountInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Privilege: r.Privilege,
		AddedBy:   r.AddedBy,
		Role:      r.Role,
	}
}

func (r updateAccountRequest) toInput() ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Privilege: r.Privilege,
		AddedBy:   r.AddedBy,
		Role:      r.Role,
	}
}
