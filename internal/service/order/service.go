package order

import (
	"context"
	"fmt"

	"storefront-api/internal/domain"
	orderrepo "storefront-api/internal/repository/order"
)

// Service manages the order status lifecycle and admin order queries.
type Service struct {
	repo repo
}

type repo interface {
	GetForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Search(ctx context.Context, f orderrepo.SearchFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteRestoringStock(ctx context.Context, id string) error
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetForUser(ctx, userID, orderID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SearchPage bundles a filtered page of orders with pagination totals.
type SearchPage struct {
	Orders     []domain.Order `json:"data"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalItems int            `json:"totalItems"`
}

// Search runs the admin order search. Page numbers are 1-based; limit
// defaults to 10.
func (s *Service) Search(ctx context.Context, f orderrepo.SearchFilter, page int) (*SearchPage, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if page < 1 {
		page = 1
	}
	f.Offset = (page - 1) * f.Limit

	orders, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	totalPages := (total + f.Limit - 1) / f.Limit
	return &SearchPage{Orders: orders, Page: page, TotalPages: totalPages, TotalItems: total}, nil
}

// UpdateStatus overwrites the order status. Any of the five enumerated values
// may follow any other; only membership is validated.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

// Delete removes an order, returning every line's quantity to stock first.
// Restoration and deletion succeed or fail together.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	return s.repo.DeleteRestoringStock(ctx, orderID)
}
