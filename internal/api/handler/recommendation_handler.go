package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

// RecommendationHandler handles HTTP requests for helper recommendations.
type RecommendationHandler struct {
	service ports.RecommendationService
}

func NewRecommendationHandler(service ports.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// --- Request types ---

type createRecommendationRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
}

type updateRecommendationRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Notes     *string `json:"notes"`
}

type approveRecommendationRequest struct {
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type rejectRecommendationRequest struct {
	Notes string `json:"notes"`
}

// Create handles POST /v1/helper-recommendations.
//
// @Summary      Recommend a helper
// @Tags         helper-recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecommendationRequest  true  "Recommendation payload"
// @Success      201   {object}  dataResponse
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /v1/helper-recommendations [post]
func (h *RecommendationHandler) Create(c echo.Context) error {
	var req createRecommendationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rec, err := h.service.Create(c.Request().Context(), ports.CreateRecommendationInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		UserID:    req.UserID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, rec)
}

func (h *RecommendationHandler) List(c echo.Context) error {
	recs, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, recs)
}

func (h *RecommendationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, rec)
}

func (h *RecommendationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateRecommendationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := ports.UpdateRecommendationInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		status := domain.RecommendationStatus(*req.Status)
		input.Status = &status
	}

	rec, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, rec)
}

// Approve handles POST /v1/helper-recommendations/:id/approve.
//
// @Summary      Approve a recommendation and provision the helper account
// @Tags         helper-recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                           true  "Recommendation id"
// @Param        body  body      approveRecommendationRequest  true  "Password of the new helper"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /v1/helper-recommendations/{id}/approve [post]
func (h *RecommendationHandler) Approve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req approveRecommendationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := h.service.Approve(c.Request().Context(), id, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

// Reject handles POST /v1/helper-recommendations/:id/reject. The body is optional.
func (h *RecommendationHandler) Reject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req rejectRecommendationRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	rec, err := h.service.Reject(c.Request().Context(), id, req.Notes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, rec)
}

func (h *RecommendationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Helper recommendation deleted"})
}
