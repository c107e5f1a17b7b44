package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		items, err := svc.List(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func addToWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if err := svc.Add(c.Request.Context(), p.UserID, c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product added to wishlist"})
	}
}

func removeFromWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if err := svc.Remove(c.Request.Context(), p.UserID, c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
	}
}

func clearWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if err := svc.Clear(c.Request.Context(), p.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}
