package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// CheckoutStores bundles the repositories that participate in the
// checkout conversion, all scoped to the same unit of work.
type CheckoutStores struct {
	Carts  CartRepository
	Orders OrderRepository
}

// UnitOfWork runs a function against transaction-scoped stores. Either
// every store operation performed inside fn commits, or none do.
type UnitOfWork interface {
	Do(fn func(stores CheckoutStores) error) error
}

// GORMUnitOfWork implements UnitOfWork on a gorm database transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{
		db: db,
	}
}

// Do runs fn inside a database transaction, handing it repositories
// bound to that transaction. A non-nil error from fn rolls everything
// back.
func (u *GORMUnitOfWork) Do(fn func(stores CheckoutStores) error) error {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		return fn(CheckoutStores{
			Carts:  NewGORMCartRepository(tx),
			Orders: NewGORMOrderRepository(tx),
		})
	})
	if err != nil {
		return fmt.Errorf("unit of work failed: %w", err)
	}
	return nil
}
