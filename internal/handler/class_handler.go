package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// ClassHandler exposes class lifecycle and catalog endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// Create godoc
// @Summary Propose a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 201 {object} models.Class
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param status query string false "Lifecycle status filter"
// @Success 200 {array} models.Class
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListPopular godoc
// @Summary List the most-enrolled approved classes
// @Tags Classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /classes/popular [get]
func (h *ClassHandler) ListPopular(c *gin.Context) {
	classes, err := h.service.ListPopular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.Class
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Update godoc
// @Summary Update class fields
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body models.UpdateClassRequest true "Fields to update"
// @Success 200 {object} models.Class
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Approve godoc
// @Summary Approve a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.Class
// @Router /classes/{id}/approve [patch]
func (h *ClassHandler) Approve(c *gin.Context) {
	class, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// ListByInstructor godoc
// @Summary List an instructor's classes
// @Tags Instructors
// @Produce json
// @Param email path string true "Instructor email"
// @Success 200 {array} models.Class
// @Router /instructors/{email}/classes [get]
func (h *ClassHandler) ListByInstructor(c *gin.Context) {
	classes, err := h.service.ListByInstructor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}
