package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "auth.user"

// RequireUser enforces bearer JWT tokens signed with HS256 and stores the
// session user in the gin context.
func RequireUser(signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		u, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(contextUserKey, u)
		c.Next()
	}
}

// RequireAction gates a route on the capability table.
func RequireAction(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if !Allowed(u.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user stored by RequireUser.
func CurrentUser(c *gin.Context) User {
	if v, ok := c.Get(contextUserKey); ok {
		if u, ok := v.(User); ok {
			return u
		}
	}
	return Anonymous
}
