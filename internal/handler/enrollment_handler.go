package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// EnrollmentHandler exposes the enrollment completion endpoint and history.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Complete godoc
// @Summary Complete an enrollment after payment confirmation
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body models.CompleteEnrollmentRequest true "Completion payload"
// @Success 201 {object} models.Enrollment
// @Router /enrollments [post]
func (h *EnrollmentHandler) Complete(c *gin.Context) {
	var req models.CompleteEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	// A student can only complete their own enrollment.
	if claims := claimsFromContext(c); claims != nil && claims.Role == models.RoleStudent && claims.Email != req.StudentEmail {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot enroll on behalf of another student"))
		return
	}

	enrollment, err := h.service.Complete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// ListForStudent godoc
// @Summary List a student's enrollments
// @Tags Enrollments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Enrollment
// @Router /enrollments/{email} [get]
func (h *EnrollmentHandler) ListForStudent(c *gin.Context) {
	enrollments, err := h.service.ListForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}
