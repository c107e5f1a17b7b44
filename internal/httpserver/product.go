package httpserver

import (
	"net/http"
	"strconv"

	productrepo "storefront-api/internal/repository/product"
	"storefront-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		offset := 0
		if limit > 0 && page > 1 {
			offset = (page - 1) * limit
		}
		f := productrepo.ListFilter{
			CategoryID: c.Query("category"),
			Search:     c.Query("search"),
			SortBy:     c.Query("sort"),
			Desc:       c.DefaultQuery("order", "desc") == "desc",
			Offset:     offset,
			Limit:      limit,
		}
		products, err := svc.ListProducts(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		p, err := svc.CreateProduct(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		p, err := svc.UpdateProduct(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
