// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

func setupRoleRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	r := gin.New()
	agrovet := r.Group("/agrovet")
	agrovet.Use(AuthRequired(), RoleRequired(models.UserTypeAgrovet))
	agrovet.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func tokenFor(t *testing.T, userType models.UserType) string {
	t.Helper()

	token, err := utils.GenerateJWT(uuid.New(), "user@example.com", string(userType), 1)
	require.NoError(t, err)
	return token
}

func TestRoleRequiredAllowsMatchingRole(t *testing.T) {
	r := setupRoleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agrovet/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.UserTypeAgrovet))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredRejectsOtherRole(t *testing.T) {
	r := setupRoleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agrovet/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.UserTypeFarmer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r := setupRoleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agrovet/dashboard", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := setupRoleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agrovet/dashboard", nil)
	req.Header.Set("Authorization", "Token abcdef")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	r := setupRoleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agrovet/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
