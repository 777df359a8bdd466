package models

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	ImageURL    string    `json:"imageUrl"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `json:"description"`
	UserID      string    `gorm:"index;not null" json:"userId"` // owning account
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
