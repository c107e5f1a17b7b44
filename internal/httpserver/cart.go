package httpserver

import (
	"errors"
	"net/http"

	"storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		var in struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		if err := svc.AddLine(c.Request.Context(), p.UserID, in.ProductID, in.Quantity); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart successfully"})
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		view, err := svc.Get(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(view.Items) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Cart is empty"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func cartCountHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		count, err := svc.Count(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func updateCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		var in struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		if err := svc.UpdateLine(c.Request.Context(), p.UserID, in.ProductID, in.Quantity); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully"})
	}
}

func removeFromCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if err := svc.RemoveLine(c.Request.Context(), p.UserID, c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart successfully"})
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		if err := svc.Clear(c.Request.Context(), p.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
	}
}

func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		result, err := svc.Checkout(c.Request.Context(), p.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNoFulfillableItems) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message":             "No products available for checkout",
					"unavailableProducts": result.Unavailable,
				})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":             "Checkout successful",
			"orderId":             result.OrderID,
			"totalCents":          result.TotalCents,
			"availableProducts":   result.Available,
			"unavailableProducts": result.Unavailable,
		})
	}
}
