package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation (duplicate email, category name).
	ErrConflict = errors.New("already exists")
	// ErrValidation indicates malformed caller input.
	ErrValidation = errors.New("invalid input")
	// ErrInsufficientStock indicates a requested quantity exceeds current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCart indicates checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoFulfillableItems indicates no cart line survived availability checks.
	ErrNoFulfillableItems = errors.New("no products available for checkout")
	// ErrInvalidStatus indicates an order status outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid order status")
)
