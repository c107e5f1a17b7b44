package wishlist

import (
	"context"
	"fmt"

	"storefront-api/internal/domain"
)

// Service manages a user's wishlist: an append/remove/clear product list with
// no quantities and no stock interaction.
type Service struct {
	repo     repo
	products productRepo
}

type repo interface {
	List(ctx context.Context, userID string) ([]domain.Product, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo repo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Product, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

func (s *Service) Add(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
