package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/perikliev00/api-shop/controllers/admin"
	"github.com/perikliev00/api-shop/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Every route requires
// a valid token; mutating routes additionally check resource ownership.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken)
	{
		adminGroup.GET("/add-product", adminControllers.GetAddProduct())                    // GET /admin/add-product
		adminGroup.GET("/products", adminControllers.GetProducts(db))                       // GET /admin/products
		adminGroup.GET("/products/export", adminControllers.ExportProductsToExcel(db))      // GET /admin/products/export
		adminGroup.POST("/add-product", adminControllers.CreateProduct(db))                 // POST /admin/add-product
		adminGroup.GET("/edit-product/:productId", adminControllers.GetEditProduct(db))     // GET /admin/edit-product/:productId
		adminGroup.POST("/edit-product", adminControllers.UpdateProduct(db))                // POST /admin/edit-product
		adminGroup.DELETE("/product/:productId", adminControllers.DeleteProduct(db))        // DELETE /admin/product/:productId
	}
}
