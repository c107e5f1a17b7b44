package httpserver

import (
	"net/http"

	"storefront-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listCategoriesHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func getCategoryHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := svc.GetCategory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func createCategoryHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		cat, err := svc.CreateCategory(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateCategoryHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		cat, err := svc.UpdateCategory(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func deleteCategoryHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
