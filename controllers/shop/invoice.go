package shopControllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/authz"
	"github.com/perikliev00/api-shop/models"
)

// GET /shop/orders/:orderId/invoice
//
// Renders the invoice PDF, keeps a copy under data/invoices and streams it
// to the caller in the same response.
func GetInvoice(db *gorm.DB) gin.HandlerFunc {
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

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Helvetica", "U", 26)
		pdf.Cell(0, 12, "Invoice")
		pdf.Ln(16)

		// Lines whose product vanished before the snapshot carry no price
		// and are left off the invoice.
		pdf.SetFont("Helvetica", "", 14)
		var total float64
		for _, item := range order.Items {
			if item.ProductID == "" {
				continue
			}
			total += float64(item.Quantity) * item.Price
			pdf.Cell(0, 8, fmt.Sprintf("%s - %d x $%.2f", item.Title, item.Quantity, item.Price))
			pdf.Ln(8)
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 20)
		pdf.Cell(0, 10, fmt.Sprintf("Total Price: $%.2f", total))

		invoiceName := "invoice-" + order.ID + ".pdf"
		invoiceDir := filepath.Join("data", "invoices")
		if err := os.MkdirAll(invoiceDir, 0755); err != nil {
			zap.S().Errorw("failed to create invoice directory", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		file, err := os.Create(filepath.Join(invoiceDir, invoiceName))
		if err != nil {
			zap.S().Errorw("failed to create invoice file", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		defer file.Close()

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `inline; filename="`+invoiceName+`"`)
		if err := pdf.Output(io.MultiWriter(file, c.Writer)); err != nil {
			// Headers are already out; all that is left is the log
			zap.S().Errorw("failed to write invoice", "order_id", order.ID, "err", err)
		}
	}
}
