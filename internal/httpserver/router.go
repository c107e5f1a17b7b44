package httpserver

import (
	"log"
	"time"

	"storefront-api/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	UserSvc     userService
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
	OrderSvc    orderService
	WishlistSvc wishlistService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := router.Group("/auth")
	{
		auth.POST("/register", registerHandler(deps.UserSvc))
		auth.POST("/login", loginHandler(deps.UserSvc))
	}

	products := router.Group("/product")
	{
		products.GET("/all", listProductsHandler(deps.CatalogSvc))
		products.GET("/get/:id", getProductHandler(deps.CatalogSvc))

		admin := products.Group("", requireAuth(deps.UserSvc), requireRole(domain.RoleAdmin))
		admin.POST("", createProductHandler(deps.CatalogSvc))
		admin.PUT("/update/:id", updateProductHandler(deps.CatalogSvc))
		admin.DELETE("/delete/:id", deleteProductHandler(deps.CatalogSvc))
	}

	categories := router.Group("/category")
	{
		categories.GET("/all", listCategoriesHandler(deps.CatalogSvc))
		categories.GET("/get/:id", getCategoryHandler(deps.CatalogSvc))

		admin := categories.Group("", requireAuth(deps.UserSvc), requireRole(domain.RoleAdmin))
		admin.POST("", createCategoryHandler(deps.CatalogSvc))
		admin.PUT("/update/:id", updateCategoryHandler(deps.CatalogSvc))
		admin.DELETE("/delete/:id", deleteCategoryHandler(deps.CatalogSvc))
	}

	cart := router.Group("/cart", requireAuth(deps.UserSvc))
	{
		cart.POST("/add", addToCartHandler(deps.CartSvc))
		cart.GET("/get", getCartHandler(deps.CartSvc))
		cart.GET("/count", cartCountHandler(deps.CartSvc))
		cart.PUT("/update", updateCartHandler(deps.CartSvc))
		cart.DELETE("/remove/:productId", removeFromCartHandler(deps.CartSvc))
		cart.DELETE("/clear", clearCartHandler(deps.CartSvc))
		cart.GET("/checkout", checkoutHandler(deps.CheckoutSvc))
	}

	orders := router.Group("/order", requireAuth(deps.UserSvc))
	{
		orders.GET("/user", listUserOrdersHandler(deps.OrderSvc))
		orders.GET("/user/:orderId", getUserOrderHandler(deps.OrderSvc))

		admin := orders.Group("", requireRole(domain.RoleAdmin))
		admin.GET("/all", searchOrdersHandler(deps.OrderSvc))
		admin.PATCH("/update/:orderId", updateOrderStatusHandler(deps.OrderSvc))
		admin.DELETE("/delete/:orderId", deleteOrderHandler(deps.OrderSvc))
	}

	wishlist := router.Group("/wishlist", requireAuth(deps.UserSvc))
	{
		wishlist.GET("", getWishlistHandler(deps.WishlistSvc))
		wishlist.POST("/add/:productId", addToWishlistHandler(deps.WishlistSvc))
		wishlist.DELETE("/remove/:productId", removeFromWishlistHandler(deps.WishlistSvc))
		wishlist.DELETE("/clear", clearWishlistHandler(deps.WishlistSvc))
	}

	users := router.Group("/user", requireAuth(deps.UserSvc))
	{
		users.GET("/me", currentUserHandler(deps.UserSvc))
		users.GET("/all", requireRole(domain.RoleAdmin), listUsersHandler(deps.UserSvc))
	}

	return router
}
