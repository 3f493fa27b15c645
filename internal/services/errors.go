package services

import "errors"

// Sentinel errors for the distinct failure kinds the API surfaces.
// Handlers map them to HTTP statuses with errors.Is.
var (
	ErrCartNotFound         = errors.New("no cart with the given ID was found")
	ErrEmptyCart            = errors.New("the cart is empty")
	ErrCustomerNotFound     = errors.New("no customer profile exists for the requesting user")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrForbidden            = errors.New("operation not permitted for this user")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)
