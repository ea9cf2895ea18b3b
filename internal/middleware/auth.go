package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
)

// identityContextKey is the gin context key the authenticated identity
// is stored under.
const identityContextKey = "identity"

// Authenticate returns middleware that validates the bearer token and
// loads the authenticated identity into the gin context.
func Authenticate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		identity, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// RequireRole returns middleware that rejects requests whose identity
// does not carry the required role. Admin passes every role check.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		if identity.Role != role && identity.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Next()
	}
}

// IdentityFromContext extracts the authenticated identity set by
// Authenticate.
func IdentityFromContext(c *gin.Context) (*domain.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok
}
