package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

const wsTestSecret = "ws-test-secret"

func wsAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/changes", WSAuthMiddleware(wsTestSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": c.GetString("userId")})
	})
	return r
}

func TestWSAuthRejectsMissingToken(t *testing.T) {
	r := wsAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/changes?tables=vehicles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWSAuthRejectsBadToken(t *testing.T) {
	r := wsAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/changes?token=not-a-jwt", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWSAuthAcceptsQueryToken(t *testing.T) {
	r := wsAuthRouter(t)

	token, err := utils.GenerateToken("u-1", "admin", wsTestSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/changes?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u-1"`)
}

func TestWSAuthAcceptsBearerHeader(t *testing.T) {
	r := wsAuthRouter(t)

	token, err := utils.GenerateToken("u-2", "manager", wsTestSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/changes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWSAuthRejectsWrongSecret(t *testing.T) {
	r := wsAuthRouter(t)

	token, err := utils.GenerateToken("u-3", "admin", "some-other-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/changes?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
