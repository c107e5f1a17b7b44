package httpserver

import (
	"errors"
	"net/http"

	"storefront-api/internal/domain"
	usersvc "storefront-api/internal/service/user"
	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP status codes. Unclassified
// errors become a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Already exists"})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
