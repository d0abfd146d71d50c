package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
)

func newAuthHandlerForTest() *AuthHandler {
	gin.SetMode(gin.TestMode)
	return NewAuthHandler(service.NewAuthService(nil, nil, service.AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
	}))
}

func TestAuthHandlerIssue(t *testing.T) {
	handler := newAuthHandlerForTest()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/credentials", strings.NewReader(`{"email":"student@example.com","role":"student"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Issue(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var credential models.CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &credential))
	assert.NotEmpty(t, credential.Token)
	assert.Equal(t, int64(3600), credential.ExpiresIn)
}

func TestAuthHandlerIssueInvalidEmail(t *testing.T) {
	handler := newAuthHandlerForTest()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/credentials", strings.NewReader(`{"email":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Issue(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
