package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// AuthHandler exposes the credential issuance endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Issue godoc
// @Summary Issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.CredentialRequest true "Identity payload"
// @Success 200 {object} models.CredentialResponse
// @Router /credentials [post]
func (h *AuthHandler) Issue(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	credential, err := h.service.Issue(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, credential)
}
