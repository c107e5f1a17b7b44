package order

import (
	"context"
	"time"

	"storefront-api/internal/domain"
)

// SearchFilter composes admin order-search criteria with AND.
type SearchFilter struct {
	// Search matches a substring of the order id or the owner's email.
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	Desc      bool
	Offset    int
	Limit     int
}

type Repository interface {
	// Create persists the order and its lines together.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Search(ctx context.Context, f SearchFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// DeleteRestoringStock returns every line's quantity to product stock and
	// removes the order, all in one transaction. On any failure nothing is
	// changed and the order remains retrievable.
	DeleteRestoringStock(ctx context.Context, id string) error
}
