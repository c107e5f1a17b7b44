package httpserver

import (
	"net/http"

	usersvc "storefront-api/internal/service/user"
	"github.com/gin-gonic/gin"
)

func registerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		u, err := users.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": u})
	}
}

func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		u, token, err := users.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}

func currentUserHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := currentPrincipal(c)
		u, err := users.GetByID(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func listUsersHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
