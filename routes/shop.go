package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	shopControllers "github.com/perikliev00/api-shop/controllers/shop"
	"github.com/perikliev00/api-shop/middleware"
)

// SetupShopRoutes registers all "/shop/*" endpoints. The catalog is public;
// everything touching a cart or an order requires a valid token.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	shopGroup := r.Group("/shop")
	{
		// ──────────────── Catalog ────────────────
		shopGroup.GET("/products", shopControllers.GetProducts(db))           // GET /shop/products?page=N
		shopGroup.GET("/products/:productId", shopControllers.GetProduct(db)) // GET /shop/products/:productId

		// ──────────────── Shopping Cart ────────────────
		cartGroup := shopGroup.Group("/cart")
		cartGroup.Use(middleware.ValidateToken)
		{
			cartGroup.GET("", shopControllers.GetCart(db))                      // GET /shop/cart
			cartGroup.POST("", shopControllers.AddToCart(db))                   // POST /shop/cart
			cartGroup.DELETE("/:productId", shopControllers.DeleteCartItem(db)) // DELETE /shop/cart/:productId
		}

		// ──────────────── Orders ────────────────
		shopGroup.POST("/ordersPost", middleware.ValidateToken, shopControllers.CreateOrder(db))             // POST /shop/ordersPost
		shopGroup.GET("/orders", middleware.ValidateToken, shopControllers.GetOrders(db))                    // GET /shop/orders
		shopGroup.GET("/orders/:orderId", middleware.ValidateToken, shopControllers.GetOrderByID(db))        // GET /shop/orders/:orderId
		shopGroup.GET("/orders/:orderId/invoice", middleware.ValidateToken, shopControllers.GetInvoice(db))  // GET /shop/orders/:orderId/invoice
	}
}
