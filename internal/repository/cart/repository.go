package cart

import (
	"context"

	"storefront-api/internal/domain"
)

type Repository interface {
	// GetByUser returns the cart with its lines in add order, or ErrNotFound
	// when the user has no cart document.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddLine creates the cart on first use and merges quantity into any
	// existing line for the same product.
	AddLine(ctx context.Context, userID, productID string, qty int) error
	// SetLineQuantity replaces a line's quantity; qty below 1 removes the line.
	SetLineQuantity(ctx context.Context, userID, productID string, qty int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	// Clear empties the cart but keeps the cart document.
	Clear(ctx context.Context, userID string) error
	// RemoveLines deletes the given product lines and, when that empties the
	// cart, the cart document itself. Returns the number of lines left.
	RemoveLines(ctx context.Context, userID string, productIDs []string) (int, error)
}
