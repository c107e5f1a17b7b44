package httpserver

import (
	"net/http"
	"strings"

	"storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// requireAuth validates the bearer token and attaches the resolved principal
// to the request context.
func requireAuth(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		principal, err := users.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// requireRole gates a route group on the principal's role.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if p == nil || p.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) *domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}
