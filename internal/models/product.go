package models

import "gorm.io/gorm"

// Product represents a product in the store.
// UnitPrice is the live catalog price; order line items snapshot it at
// checkout time and never read it again.
type Product struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title        string  `json:"title" validate:"required,min=3,max=255"`
	Slug         string  `json:"slug" gorm:"index" validate:"omitempty,max=255"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	UnitPrice    float64 `json:"unit_price" validate:"required,gte=1"`
	Quantity     int     `json:"quantity" validate:"gte=0,lte=10000"`
	CollectionID uint    `json:"collection_id" validate:"required"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
