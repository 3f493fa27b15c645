package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership tiers for customers.
const (
	MembershipBronze = "bronze"
	MembershipSilver = "silver"
	MembershipGold   = "gold"
)

// Customer holds the store profile attached one-to-one to a User account.
// It is never created by the checkout path; a missing Customer record is
// an error there. The /customers/me endpoint get-or-creates it instead.
type Customer struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Phone      string     `json:"phone" gorm:"type:varchar(32)" validate:"omitempty,max=32"`
	Birthdate  *time.Time `json:"birthdate,omitempty"`
	Membership string     `json:"membership" gorm:"type:varchar(10);default:bronze" validate:"omitempty,oneof=bronze silver gold"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
