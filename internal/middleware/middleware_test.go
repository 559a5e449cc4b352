package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-scheduler/internal/config"
)

func testRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", mw, func(c *gin.Context) {
		role, _ := c.Get(ContextActorRole)
		userRole, _ := c.Get(ContextUserRole)
		c.JSON(http.StatusOK, gin.H{"actor_role": role, "user_role": userRole})
	})
	return r
}

func probe(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := testRouter(AuthMiddleware(cfg))

	t.Run("missing header", func(t *testing.T) {
		w := probe(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := probe(r, map[string]string{"Authorization": "Token abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		bad := signToken(t, "other-secret", jwt.MapClaims{
			"sub": 1, "exp": time.Now().Add(time.Hour).Unix(),
		})
		w := probe(r, map[string]string{"Authorization": "Bearer " + bad})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, "test-secret", jwt.MapClaims{
			"sub": 1, "exp": time.Now().Add(-time.Hour).Unix(),
		})
		w := probe(r, map[string]string{"Authorization": "Bearer " + expired})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		ok := signToken(t, "test-secret", jwt.MapClaims{
			"sub": 1, "role": "staff", "name": "Ana",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := probe(r, map[string]string{"Authorization": "Bearer " + ok})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_role":"staff"`)
	})
}

func TestAdminTokenMiddleware(t *testing.T) {
	cfg := &config.Config{AdminToken: "admin-secret", StaffToken: "staff-secret"}
	r := testRouter(AdminTokenMiddleware(cfg))

	t.Run("missing token", func(t *testing.T) {
		w := probe(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		w := probe(r, map[string]string{HeaderAdminToken: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("staff token is not enough", func(t *testing.T) {
		w := probe(r, map[string]string{HeaderStaffToken: "staff-secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin token", func(t *testing.T) {
		w := probe(r, map[string]string{HeaderAdminToken: "admin-secret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"actor_role":"admin"`)
	})
}

func TestStaffTokenMiddleware(t *testing.T) {
	cfg := &config.Config{AdminToken: "admin-secret", StaffToken: "staff-secret"}
	r := testRouter(StaffTokenMiddleware(cfg))

	t.Run("staff token", func(t *testing.T) {
		w := probe(r, map[string]string{HeaderStaffToken: "staff-secret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"actor_role":"staff"`)
	})

	t.Run("admin token also accepted", func(t *testing.T) {
		w := probe(r, map[string]string{HeaderAdminToken: "admin-secret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"actor_role":"admin"`)
	})

	t.Run("no token", func(t *testing.T) {
		w := probe(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTokenMatches_EmptySecretNeverMatches(t *testing.T) {
	assert.False(t, tokenMatches("", ""))
	assert.False(t, tokenMatches("anything", ""))
	assert.False(t, tokenMatches("", "secret"))
	assert.True(t, tokenMatches("secret", "secret"))
}
