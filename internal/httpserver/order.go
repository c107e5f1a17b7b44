package httpserver

import (
	"net/http"
	"strconv"
	"time"

	orderrepo "storefront-api/internal/repository/order"
	"github.com/gin-gonic/gin"
)

func listUserOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		orders, err := svc.ListForUser(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getUserOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		order, err := svc.GetForUser(c.Request.Context(), p.UserID, c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func searchOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		f := orderrepo.SearchFilter{
			Search: c.Query("search"),
			Status: c.Query("status"),
			SortBy: c.DefaultQuery("sort", "orderDate"),
			Desc:   c.DefaultQuery("order", "desc") == "desc",
			Limit:  limit,
		}
		if v := c.Query("startDate"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				if t, err = time.Parse("2006-01-02", v); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate"})
					return
				}
			}
			f.StartDate = &t
		}
		if v := c.Query("endDate"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				if t, err = time.Parse("2006-01-02", v); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate"})
					return
				}
			}
			f.EndDate = &t
		}

		pageResult, err := svc.Search(c.Request.Context(), f, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pageResult)
	}
}

func updateOrderStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), c.Param("orderId"), in.Status); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

func deleteOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
