package adminControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/authz"
	"github.com/perikliev00/api-shop/models"
)

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// validateProductInput checks the form fields before anything is written.
// Returns the parsed price and an empty message on success.
func validateProductInput(title, priceStr, description string) (float64, string) {
	if len(strings.TrimSpace(title)) < 3 {
		return 0, "Title must be at least 3 characters"
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return 0, "Invalid price"
	}
	desc := strings.TrimSpace(description)
	if len(desc) < 5 || len(desc) > 400 {
		return 0, "Description must be between 5 and 400 characters"
	}
	return price, ""
}

// saveProductImage stores an uploaded image and returns its public URL.
// Returns "" when the request carries no file.
func saveProductImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), strings.ReplaceAll(file.Filename, " ", "_"))
	saveDir := uploadsDir()
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}

// GET /admin/add-product
func GetAddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Use POST /admin/add-product to add a product. Send form fields title, imageUrl, price, description",
		})
	}
}

// GET /admin/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var products []models.Product
		if err := db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
			zap.S().Errorw("failed to fetch products", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

// POST /admin/add-product
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		title := c.PostForm("title")
		priceStr := c.PostForm("price")
		description := c.PostForm("description")

		price, msg := validateProductInput(title, priceStr, description)
		if msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": msg})
			return
		}

		imageURL, err := saveProductImage(c)
		if err != nil {
			zap.S().Errorw("failed to save product image", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		if imageURL == "" {
			imageURL = c.PostForm("imageUrl")
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(title),
			ImageURL:    imageURL,
			Price:       price,
			Description: strings.TrimSpace(description),
			UserID:      userID,
		}
		if err := db.Create(&product).Error; err != nil {
			zap.S().Errorw("failed to create product", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added!", "data": product})
	}
}

// GET /admin/edit-product/:productId
func GetEditProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		prodID := c.Param("productId")

		var product models.Product
		if err := db.First(&product, "id = ?", prodID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			zap.S().Errorw("failed to fetch product", "id", prodID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

// POST /admin/edit-product
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		prodID := c.PostForm("productId")
		title := c.PostForm("title")
		priceStr := c.PostForm("price")
		description := c.PostForm("description")

		price, msg := validateProductInput(title, priceStr, description)
		if msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": msg})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", prodID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			zap.S().Errorw("failed to fetch product", "id", prodID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if !authz.Owns(product.UserID, userID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		imageURL, err := saveProductImage(c)
		if err != nil {
			zap.S().Errorw("failed to save product image", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		if imageURL == "" {
			imageURL = c.PostForm("imageUrl")
		}

		product.Title = strings.TrimSpace(title)
		product.Price = price
		product.Description = strings.TrimSpace(description)
		if imageURL != "" {
			product.ImageURL = imageURL
		}
		if err := db.Save(&product).Error; err != nil {
			zap.S().Errorw("failed to update product", "id", prodID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated!", "data": product})
	}
}

// DELETE /admin/product/:productId
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		prodID := c.Param("productId")

		// Owner scoping is part of the delete itself, so a foreign product
		// looks the same as a missing one.
		result := db.Where("id = ? AND user_id = ?", prodID, userID).Delete(&models.Product{})
		if result.Error != nil {
			zap.S().Errorw("failed to delete product", "id", prodID, "err", result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found or not authorized"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted!"})
	}
}
