package shopControllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/models"
)

const itemsPerPage = 1

// GET /shop/products?page=N
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Missing or unparsable page falls back to the first page
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		var totalItems int64
		if err := db.Model(&models.Product{}).Count(&totalItems).Error; err != nil {
			zap.S().Errorw("failed to count products", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		var products []models.Product
		if err := db.
			Offset((page - 1) * itemsPerPage).
			Limit(itemsPerPage).
			Find(&products).Error; err != nil {
			zap.S().Errorw("failed to fetch products", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    products,
			"meta": gin.H{
				"currentPage":     page,
				"totalItems":      totalItems,
				"totalPages":      int(math.Ceil(float64(totalItems) / float64(itemsPerPage))),
				"hasNextPage":     int64(itemsPerPage*page) < totalItems,
				"hasPreviousPage": page > 1,
				"nextPage":        page + 1,
				"previousPage":    page - 1,
			},
		})
	}
}

// GET /shop/products/:productId
func GetProduct(db *gorm.DB) gin.HandlerFunc {
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
