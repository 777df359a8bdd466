package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/perikliev00/api-shop/controllers/auth"
	"github.com/perikliev00/api-shop/mailer"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, mail mailer.Mailer) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(db, mail))          // POST /auth/signup
		authGroup.POST("/login", authControllers.Login(db))                  // POST /auth/login
		authGroup.POST("/logout", authControllers.Logout())                  // POST /auth/logout
		authGroup.POST("/reset", authControllers.Reset(db, mail))            // POST /auth/reset
		authGroup.POST("/new-password", authControllers.NewPassword(db))     // POST /auth/new-password
	}
}
