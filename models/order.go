package models

import (
	"encoding/json"
	"time"
)

// Order is immutable once created. Its items carry a copy of the product
// data at order time, so later catalog edits never change stored orders.
type Order struct {
	ID        string      `gorm:"primaryKey"`
	UserEmail string      `gorm:"not null"`
	UserID    string      `gorm:"index;not null"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type OrderItem struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     string `gorm:"index"`
	Quantity    int
	ProductID   string // empty when the product vanished before snapshotting
	Title       string
	ImageURL    string
	Price       float64
	Description string
}

// MarshalJSON keeps the wire shape of an order: an owner snapshot under
// "user" and the lines under "products".
func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []OrderItem{}
	}
	return json.Marshal(struct {
		ID        string      `json:"id"`
		User      orderUser   `json:"user"`
		Products  []OrderItem `json:"products"`
		CreatedAt time.Time   `json:"created_at"`
	}{
		ID:        o.ID,
		User:      orderUser{Email: o.UserEmail, UserID: o.UserID},
		Products:  items,
		CreatedAt: o.CreatedAt,
	})
}

type orderUser struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

type orderItemProduct struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// MarshalJSON renders a line as {quantity, product}, with product null when
// the referenced product was already gone at order time.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	out := struct {
		Quantity int               `json:"quantity"`
		Product  *orderItemProduct `json:"product"`
	}{Quantity: i.Quantity}

	if i.ProductID != "" {
		out.Product = &orderItemProduct{
			ID:          i.ProductID,
			Title:       i.Title,
			ImageURL:    i.ImageURL,
			Price:       i.Price,
			Description: i.Description,
		}
	}
	return json.Marshal(out)
}
