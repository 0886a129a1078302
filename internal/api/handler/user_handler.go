package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// UserHandler serves the routes that exist for users only: the helper
// association and the user's action history. The CRUD routes of users are
// served by an AccountHandler over the same service.
type UserHandler struct {
	users   ports.UserService
	actions ports.UserActionService
}

func NewUserHandler(users ports.UserService, actions ports.UserActionService) *UserHandler {
	return &UserHandler{users: users, actions: actions}
}

// Register mounts the handler's routes on the users group.
func (h *UserHandler) Register(g *echo.Group) {
	g.GET("/:id/helpers", h.ListHelpers)
	g.POST("/:id/helpers/:helperId", h.AddHelper)
	g.DELETE("/:id/helpers/:helperId", h.RemoveHelper)
	g.GET("/:id/actions", h.ListActions)
}

// ListHelpers handles GET /v1/users/:id/helpers.
// An unknown user yields an empty list, not a 404.
func (h *UserHandler) ListHelpers(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	helpers, err := h.users.GetUserHelpers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, helpers)
}

// AddHelper handles POST /v1/users/:id/helpers/:helperId.
func (h *UserHandler) AddHelper(c echo.Context) error {
	userID, helperID, err := userHelperIDs(c)
	if err != nil {
		return err
	}
	user, err := h.users.AddHelperToUser(c.Request().Context(), userID, helperID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// RemoveHelper handles DELETE /v1/users/:id/helpers/:helperId.
func (h *UserHandler) RemoveHelper(c echo.Context) error {
	userID, helperID, err := userHelperIDs(c)
	if err != nil {
		return err
	}
	user, err := h.users.RemoveHelperFromUser(c.Request().Context(), userID, helperID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// ListActions handles GET /v1/users/:id/actions, newest first.
func (h *UserHandler) ListActions(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actions, err := h.actions.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actions)
}

func userHelperIDs(c echo.Context) (int64, int64, error) {
	userID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	helperID, err := pathID(c, "helperId")
	if err != nil {
		return 0, 0, err
	}
	return userID, helperID, nil
}
