package shopControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/models"
)

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
}

// resolveCartProducts looks up every product referenced by the cart lines in
// one batched query. Vanished products are simply absent from the map.
func resolveCartProducts(db *gorm.DB, items []models.CartItem) (map[string]models.Product, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	byID := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// GET /shop/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			zap.S().Errorw("failed to fetch cart", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		byID, err := resolveCartProducts(db, cart.Items)
		if err != nil {
			zap.S().Errorw("failed to resolve cart products", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		// Lines whose product is gone keep their quantity and render a
		// null product; they are never dropped silently.
		details := make([]gin.H, 0, len(cart.Items))
		for _, item := range cart.Items {
			line := gin.H{"product": nil, "quantity": item.Quantity}
			if product, ok := byID[item.ProductID]; ok {
				line["product"] = product
			}
			details = append(details, line)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
	}
}

// POST /shop/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			zap.S().Errorw("failed to validate product", "id", input.ProductID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			zap.S().Errorw("failed to fetch cart", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
				return
			}
			// First time in the cart
			newItem := models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  1,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&newItem).Error; err != nil {
				zap.S().Errorw("failed to add cart item", "user_id", userID, "err", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart"})
			return
		}

		// Already in the cart: bump the quantity
		item.Quantity++
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			zap.S().Errorw("failed to update cart item", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart"})
	}
}

// DELETE /shop/cart/:productId
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		productID := c.Param("productId")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			zap.S().Errorw("failed to fetch cart", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		// Removing a product that is not in the cart is a no-op
		if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			zap.S().Errorw("failed to delete cart item", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from cart"})
	}
}
