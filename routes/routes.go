package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/mailer"
)

// SetupRoutes is the single entry-point that wires up the Auth, Shop and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mail mailer.Mailer) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, mail)

	// Shop routes (catalog public, cart/orders JWT-protected)
	SetupShopRoutes(r, db)

	// Admin routes (JWT-protected, owner-scoped)
	SetupAdminRoutes(r, db)
}
