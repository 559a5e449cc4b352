package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-scheduler/internal/config"
)

const (
	HeaderAdminToken = "x-admin-token"
	HeaderStaffToken = "x-staff-token"

	// ContextActorRole is set by the shared-secret scheme; the bearer
	// scheme puts the role in ContextUserRole instead.
	ContextActorRole = "actorRole"
)

func tokenMatches(got, want string) bool {
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// AdminTokenMiddleware gates the booking decision endpoints with the shared
// secret x-admin-token header. This scheme predates the bearer sessions and
// is kept for compatibility.
func AdminTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tokenMatches(c.GetHeader(HeaderAdminToken), cfg.AdminToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid_admin_token"})
			return
		}

		c.Set(ContextActorRole, "admin")
		c.Next()
	}
}

// StaffTokenMiddleware accepts either the admin or the staff shared secret.
func StaffTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenMatches(c.GetHeader(HeaderAdminToken), cfg.AdminToken) {
			c.Set(ContextActorRole, "admin")
			c.Next()
			return
		}

		if tokenMatches(c.GetHeader(HeaderStaffToken), cfg.StaffToken) {
			c.Set(ContextActorRole, "staff")
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid_staff_token"})
	}
}
