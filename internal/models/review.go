package models

import "time"

// Review is a customer review attached to a product.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;index"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null"`
	Title     string    `json:"title" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Content   string    `json:"content" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at"`
}
