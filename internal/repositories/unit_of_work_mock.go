package repositories

// MockUnitOfWork implements UnitOfWork over the in-memory repositories.
// It snapshots their state before running fn and restores it when fn
// fails, mimicking a transaction rollback so atomicity can be tested
// without a database.
type MockUnitOfWork struct {
	Carts  *MockCartRepository
	Orders *MockOrderRepository
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork.
func NewMockUnitOfWork(carts *MockCartRepository, orders *MockOrderRepository) *MockUnitOfWork {
	return &MockUnitOfWork{
		Carts:  carts,
		Orders: orders,
	}
}

// Do runs fn against the in-memory stores, rolling both back if it fails.
func (u *MockUnitOfWork) Do(fn func(stores CheckoutStores) error) error {
	cartSnap, itemSnap := u.Carts.snapshot()
	orderSnap := u.Orders.snapshot()

	err := fn(CheckoutStores{Carts: u.Carts, Orders: u.Orders})
	if err != nil {
		u.Carts.restore(cartSnap, itemSnap)
		u.Orders.restore(orderSnap)
		return err
	}
	return nil
}
