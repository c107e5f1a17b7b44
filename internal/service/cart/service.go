package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/domain"
	"github.com/google/uuid"
)

// Service implements the cart mutation primitives. Stock is checked only on
// explicit quantity updates; adds are unbounded and reconciled at checkout.
type Service struct {
	carts    cartRepo
	products productRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddLine(ctx context.Context, userID, productID string, qty int) error
	SetLineQuantity(ctx context.Context, userID, productID string, qty int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(carts cartRepo, products productRepo) *Service {
	return &Service{carts: carts, products: products}
}

// AddLine validates the product exists, then merges qty into the user's cart,
// creating the cart on first use.
func (s *Service) AddLine(ctx context.Context, userID, productID string, qty int) error {
	if err := validProductID(productID); err != nil {
		return err
	}
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.carts.AddLine(ctx, userID, productID, qty)
}

// UpdateLine replaces a line's quantity. A quantity below 1 removes the line.
// The new quantity must not exceed the product's current stock.
func (s *Service) UpdateLine(ctx context.Context, userID, productID string, qty int) error {
	if err := validProductID(productID); err != nil {
		return err
	}
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if !hasLine(cart, productID) {
		return domain.ErrNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if qty > product.Stock {
		return fmt.Errorf("%w: only %d items available", domain.ErrInsufficientStock, product.Stock)
	}
	return s.carts.SetLineQuantity(ctx, userID, productID, qty)
}

func (s *Service) RemoveLine(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	return s.carts.RemoveLine(ctx, userID, productID)
}

// Clear empties the cart but keeps the cart document, so clearing twice in a
// row succeeds both times.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// Get joins cart lines with live product data and derives totals from the
// current prices, not a snapshot. An absent cart yields an empty view.
func (s *Service) Get(ctx context.Context, userID string) (*domain.CartView, error) {
	view := &domain.CartView{Items: []domain.CartItemView{}}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return view, nil
		}
		return nil, err
	}

	for _, line := range cart.Lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// product deleted since the add; the line stays visible
				view.Items = append(view.Items, domain.CartItemView{Quantity: line.Quantity})
				view.TotalQuantity += line.Quantity
				continue
			}
			return nil, err
		}
		view.Items = append(view.Items, domain.CartItemView{Quantity: line.Quantity, Product: product})
		view.TotalQuantity += line.Quantity
		view.TotalCents += int64(line.Quantity) * product.PriceCents
	}
	return view, nil
}

// Count returns the summed quantity across cart lines.
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range cart.Lines {
		count += line.Quantity
	}
	return count, nil
}

// validProductID rejects ids that cannot name a product before they reach
// storage, where a malformed uuid would otherwise read as a query error.
func validProductID(productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}
	return nil
}

func hasLine(cart *domain.Cart, productID string) bool {
	for _, line := range cart.Lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}
