package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/authz"
)

// RequireRoles пускает только перечисленные роли; ставится после AdminAuth
func RequireRoles(allowed ...int) gin.HandlerFunc {
	allowedSet := make(map[int]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleID, ok := roleFromCtx(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		if _, ok := allowedSet[roleID]; !ok {
			log.Printf("[admin][authz] admin=%q role=%s denied %s %s",
				c.GetString(CtxAdminUsername), authz.RoleName(roleID), c.Request.Method, c.FullPath())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ReadOnlyGuard: viewer может только читать
func ReadOnlyGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, _ := roleFromCtx(c)
		if !authz.IsReadOnly(roleID) {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		}
	}
}

func roleFromCtx(c *gin.Context) (int, bool) {
	v, ok := c.Get(CtxRoleID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
