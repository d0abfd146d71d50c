package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// SelectionHandler exposes the selection stage of the enrollment pipeline.
type SelectionHandler struct {
	service *service.SelectionService
}

// NewSelectionHandler constructs a selection handler.
func NewSelectionHandler(svc *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Select godoc
// @Summary Select a class for later enrollment
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body models.SelectClassRequest true "Selection payload"
// @Success 201 {object} models.Selection
// @Router /selections [post]
func (h *SelectionHandler) Select(c *gin.Context) {
	var req models.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	selection, err := h.service.Select(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// ListForStudent godoc
// @Summary List a student's selections
// @Tags Selections
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Selection
// @Router /selections/{email} [get]
func (h *SelectionHandler) ListForStudent(c *gin.Context) {
	selections, err := h.service.ListForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections)
}

// Get godoc
// @Summary Fetch one of a student's selections
// @Tags Selections
// @Produce json
// @Param email path string true "Student email"
// @Param id path string true "Selection ID"
// @Success 200 {object} models.Selection
// @Router /selections/{email}/{id} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	selection, err := h.service.Get(c.Request.Context(), c.Param("email"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection)
}

// Remove godoc
// @Summary Remove a selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 204
// @Router /selections/{id} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	requesterEmail := ""
	if claims := claimsFromContext(c); claims != nil && claims.Role == models.RoleStudent {
		requesterEmail = claims.Email
	}
	if err := h.service.Remove(c.Request.Context(), c.Param("id"), requesterEmail); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
