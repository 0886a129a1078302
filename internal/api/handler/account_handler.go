package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// AccountHandler serves the CRUD routes of one account kind. The router
// mounts one instance per kind under /v1/<kind path>.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register mounts the handler's routes on g.
func (h *AccountHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by-email", h.GetByEmail)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /v1/{kind}.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account payload"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /v1/{kind} [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := req.checkKindFields(h.service.Kind()); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, account)
}

// List handles GET /v1/{kind}.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, accounts)
}

// GetByEmail handles GET /v1/{kind}/by-email?email=.
func (h *AccountHandler) GetByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}
	account, err := h.service.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// Get handles GET /v1/{kind}/:id.
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	account, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// Update handles PUT /v1/{kind}/:id. Only the fields present in the body change.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// Delete handles DELETE /v1/{kind}/:id.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: h.service.Kind().Label() + " account deleted"})
}
