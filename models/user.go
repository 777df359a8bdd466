package models

import "time"

type User struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Email             string     `gorm:"unique;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	Cart              Cart       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	CreatedAt         time.Time  `json:"created_at"`
}
