package models

// Collection groups products for browsing.
type Collection struct {
	ID                uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string  `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	FeaturedProductID *string `json:"featured_product_id,omitempty" gorm:"type:varchar(36)"`
	ProductsCount     int64   `json:"products_count" gorm:"-"` // Computed on list, not stored
}
