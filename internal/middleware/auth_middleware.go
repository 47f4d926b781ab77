// auth_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"container-tracking-service/internal/service"
)

const currentUserKey = "currentUser"

// Auth validates the bearer token and stores the resolved identity in
// the gin context for the handlers behind it.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)

		user, err := authService.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrStoreUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database temporarily unavailable, please retry later"})
			} else {
				c.Header("WWW-Authenticate", "Bearer")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser pulls the identity stored by Auth out of the gin context.
func CurrentUser(c *gin.Context) (*service.CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*service.CurrentUser)
	return user, ok
}
