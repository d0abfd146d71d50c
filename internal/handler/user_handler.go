package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// UserHandler exposes profile and instructor endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Upsert godoc
// @Summary Create or refresh a profile
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param payload body models.UpsertUserRequest true "Profile payload"
// @Success 200 {object} models.User
// @Router /users/{email} [put]
func (h *UserHandler) Upsert(c *gin.Context) {
	var req models.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.service.Upsert(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Get godoc
// @Summary Get a profile
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} models.User
// @Router /users/{email} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// List godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// ListInstructors godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Success 200 {array} models.User
// @Router /instructors [get]
func (h *UserHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// ListPopularInstructors godoc
// @Summary List the most popular instructors
// @Tags Instructors
// @Produce json
// @Success 200 {array} models.InstructorRanking
// @Router /instructors/popular [get]
func (h *UserHandler) ListPopularInstructors(c *gin.Context) {
	rankings, err := h.service.ListPopularInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rankings)
}
