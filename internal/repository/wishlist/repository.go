package wishlist

import (
	"context"

	"storefront-api/internal/domain"
)

type Repository interface {
	// List returns wished products joined with live catalog data, oldest first.
	List(ctx context.Context, userID string) ([]domain.Product, error)
	// Add is idempotent; wishing the same product twice keeps one entry.
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}
