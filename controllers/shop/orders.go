package shopControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/authz"
	"github.com/perikliev00/api-shop/models"
)

// POST /shop/ordersPost
//
// Snapshots the cart against the catalog at this moment and persists the
// order, then clears the cart. The two writes are not wrapped in a
// transaction: a failure after the order insert leaves a saved order and an
// untouched cart, surfaced to the caller as a 500.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		// The token carries the email too, but the live account is the
		// source of truth at order time.
		var user models.User
		if err := db.Preload("Cart.Items").First(&user, "id = ?", userID).Error; err != nil {
			zap.S().Errorw("failed to fetch user", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		byID, err := resolveCartProducts(db, user.Cart.Items)
		if err != nil {
			zap.S().Errorw("failed to resolve cart products", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		orderItems := make([]models.OrderItem, 0, len(user.Cart.Items))
		for _, item := range user.Cart.Items {
			orderItem := models.OrderItem{Quantity: item.Quantity}
			if product, ok := byID[item.ProductID]; ok {
				orderItem.ProductID = product.ID
				orderItem.Title = product.Title
				orderItem.ImageURL = product.ImageURL
				orderItem.Price = product.Price
				orderItem.Description = product.Description
			}
			orderItems = append(orderItems, orderItem)
		}

		order := models.Order{
			ID:        uuid.NewString(),
			UserEmail: user.Email,
			UserID:    user.ID,
			Items:     orderItems,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&order).Error; err != nil {
			zap.S().Errorw("failed to create order", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if err := db.Where("cart_id = ?", user.Cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			// The order exists at this point; the cart keeps its lines.
			zap.S().Errorw("failed to clear cart after order", "user_id", userID, "order_id", order.ID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order placed successfully"})
	}
}

// GET /shop/orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		// Ownership is part of the query, not an afterthought
		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
			zap.S().Errorw("failed to fetch orders", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /shop/orders/:orderId
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		orderID := c.Param("orderId")

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			zap.S().Errorw("failed to fetch order", "order_id", orderID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		if !authz.Owns(order.UserID, userID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
