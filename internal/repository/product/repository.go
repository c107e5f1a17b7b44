package product

import (
	"context"

	"storefront-api/internal/domain"
)

// ListFilter narrows and orders product listings. Zero value lists everything
// newest first.
type ListFilter struct {
	CategoryID string
	Search     string
	SortBy     string
	Desc       bool
	Offset     int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)

	// ClaimStock atomically decrements stock by qty, but only when the current
	// stock covers it. Returns ErrInsufficientStock when it does not and
	// ErrNotFound when the product is gone.
	ClaimStock(ctx context.Context, id string, qty int) error
	// ReleaseStock unconditionally increments stock by qty.
	ReleaseStock(ctx context.Context, id string, qty int) error
}
