package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T, accessExp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "internlink.test",
	})
	authMW := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/me", authMW.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetInt64("userID"),
			"role":   c.GetString("roleType"),
		})
	})
	router.GET("/admin", authMW.JWTAuth(), authMW.RoleRequired(string(models.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	access, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "user@example.com",
		UserType: role,
	})
	require.NoError(t, err)
	return access
}

func TestJWTAuthAcceptsBearerToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)
	token := issueToken(t, jwtService, models.RoleIntern)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":7`)
	assert.Contains(t, w.Body.String(), string(models.RoleIntern))
}

func TestJWTAuthAcceptsRawTokenAndQueryParam(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)
	token := issueToken(t, jwtService, models.RoleIntern)

	// Raw JWT without the Bearer scheme
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Token via query parameter, the websocket client path
	req = httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_007")
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, -time.Minute)
	token := issueToken(t, jwtService, models.RoleIntern)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestRoleRequiredEnforcesRole(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleIntern))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_009")

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
