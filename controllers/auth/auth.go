package authControllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/auth"
	"github.com/perikliev00/api-shop/mailer"
	"github.com/perikliev00/api-shop/models"
)

// -------- Request Structs --------

type SignupInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=5,alphanum"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetInput struct {
	Email string `json:"email" binding:"required,email"`
}

type NewPasswordInput struct {
	Password      string `json:"password" binding:"required,min=5,alphanum"`
	UserID        string `json:"userId" binding:"required"`
	PasswordToken string `json:"passwordToken" binding:"required"`
}

// POST /auth/signup
func Signup(db *gorm.DB, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Passwords have to match."})
			return
		}

		// Reject duplicate emails before touching anything
		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "E-Mail already exists, please pick a different one."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
		if err != nil {
			zap.S().Errorw("password hashing failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Email:        input.Email,
			PasswordHash: string(hashed),
			Cart:         models.Cart{},
		}
		if err := db.Create(&user).Error; err != nil {
			zap.S().Errorw("failed to create user", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		// Welcome mail is best-effort
		if err := mail.Send(user.Email, "Signup succeeded!", "<h1>You successfully signed up!</h1>"); err != nil {
			zap.S().Warnw("signup mail failed", "email", user.Email, "err", err)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully!"})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password."})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password."})
			return
		}

		token, err := auth.IssueToken(user.ID, user.Email)
		if err != nil {
			zap.S().Errorw("token signing failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"token":     token,
			"userId":    user.ID,
			"expiresIn": int(auth.TokenTTL.Seconds()),
		})
	}
}

// POST /auth/logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Tokens are stateless; the client just discards its copy.
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout handled client-side. Remove token on client."})
	}
}

// POST /auth/reset
func Reset(db *gorm.DB, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			zap.S().Errorw("reset token generation failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed."})
			return
		}
		token := hex.EncodeToString(buf)

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account with that email found."})
			return
		}

		expires := time.Now().Add(time.Hour)
		updates := models.User{ResetToken: token, ResetTokenExpires: &expires}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			zap.S().Errorw("failed to store reset token", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if err := mail.Send(user.Email, "Password reset",
			"<p>You requested a password reset.</p><p>Use this token to set a new password: "+token+"</p>"); err != nil {
			zap.S().Warnw("reset mail failed", "email", user.Email, "err", err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reset email sent if user exists."})
	}
}

// POST /auth/new-password
func NewPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input NewPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		err := db.Where("reset_token = ? AND reset_token_expires > ? AND id = ?",
			input.PasswordToken, time.Now(), input.UserID).First(&user).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired token."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
		if err != nil {
			zap.S().Errorw("password hashing failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if err := db.Model(&user).Updates(map[string]interface{}{
			"password_hash":       string(hashed),
			"reset_token":         "",
			"reset_token_expires": nil,
		}).Error; err != nil {
			zap.S().Errorw("failed to update password", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully."})
	}
}
