package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

type UserActionHandler struct {
	service ports.UserActionService
}

func NewUserActionHandler(service ports.UserActionService) *UserActionHandler {
	return &UserActionHandler{service: service}
}

type addUserActionRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Action string `json:"action" validate:"required"`
}

// Add handles POST /v1/user-actions. The action is stored synchronously so
// the caller gets the stored record back.
func (h *UserActionHandler) Add(c echo.Context) error {
	var req addUserActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	action, err := h.service.Add(c.Request().Context(), req.UserID, req.Action)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, action)
}
