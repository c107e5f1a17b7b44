package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront-api/internal/domain"
)

// Service converts a mutable cart into an immutable order while reconciling
// inventory. Checkout is partial-success by design: unfulfillable lines are
// reported and left in the cart, never a reason to fail the whole operation.
type Service struct {
	carts    cartRepo
	products productRepo
	orders   orderRepo
	logger   *log.Logger
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveLines(ctx context.Context, userID string, productIDs []string) (int, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ClaimStock(ctx context.Context, id string, qty int) error
	ReleaseStock(ctx context.Context, id string, qty int) error
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

func New(carts cartRepo, products productRepo, orders orderRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{carts: carts, products: products, orders: orders, logger: logger}
}

// AvailableItem summarizes an ordered line at the price observed during this
// checkout.
type AvailableItem struct {
	ProductID  string `json:"-"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// UnavailableItem explains why a cart line could not be fulfilled.
type UnavailableItem struct {
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

// Result is the outcome of a checkout. With ErrNoFulfillableItems the result
// is still populated so callers can report every reason.
type Result struct {
	OrderID     string            `json:"orderId"`
	TotalCents  int64             `json:"totalCents"`
	Available   []AvailableItem   `json:"availableProducts"`
	Unavailable []UnavailableItem `json:"unavailableProducts"`
}

// Checkout runs the cart-to-order transition for one user:
// load the cart, partition lines into fulfillable and unfulfillable against
// live inventory, claim stock per line with a conditional decrement, create
// one order for the claimed subset, and prune exactly the claimed lines.
func (s *Service) Checkout(ctx context.Context, userID string) (*Result, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	result := &Result{
		Available:   []AvailableItem{},
		Unavailable: []UnavailableItem{},
	}

	type candidate struct {
		product *domain.Product
		qty     int
	}
	var candidates []candidate
	for _, line := range cart.Lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result.Unavailable = append(result.Unavailable, UnavailableItem{
					Name:   "Unknown Product",
					Reason: "Product not found",
				})
				continue
			}
			return nil, err
		}
		if line.Quantity > product.Stock {
			result.Unavailable = append(result.Unavailable, UnavailableItem{
				Name:      product.Name,
				Reason:    fmt.Sprintf("Only %d items available", product.Stock),
				Requested: line.Quantity,
				Available: product.Stock,
			})
			continue
		}
		candidates = append(candidates, candidate{product: product, qty: line.Quantity})
	}

	// Claim stock before creating the order so a lost race never produces an
	// order line without inventory behind it. A failed claim becomes a
	// late-discovered unavailability.
	var claimed []AvailableItem
	for _, c := range candidates {
		if err := s.products.ClaimStock(ctx, c.product.ID, c.qty); err != nil {
			switch {
			case errors.Is(err, domain.ErrInsufficientStock):
				result.Unavailable = append(result.Unavailable, s.lateUnavailable(ctx, c.product, c.qty))
				continue
			case errors.Is(err, domain.ErrNotFound):
				result.Unavailable = append(result.Unavailable, UnavailableItem{
					Name:   c.product.Name,
					Reason: "Product not found",
				})
				continue
			default:
				s.releaseClaimed(ctx, claimed)
				return nil, err
			}
		}
		claimed = append(claimed, AvailableItem{
			ProductID:  c.product.ID,
			Name:       c.product.Name,
			Quantity:   c.qty,
			PriceCents: c.product.PriceCents,
		})
		result.TotalCents += int64(c.qty) * c.product.PriceCents
	}

	if len(claimed) == 0 {
		result.TotalCents = 0
		return result, domain.ErrNoFulfillableItems
	}
	result.Available = claimed

	lines := make([]domain.OrderLine, 0, len(claimed))
	for _, item := range claimed {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := s.orders.Create(ctx, domain.Order{
		UserID:     userID,
		Lines:      lines,
		TotalCents: result.TotalCents,
		Status:     domain.StatusPending,
	})
	if err != nil {
		s.releaseClaimed(ctx, claimed)
		return nil, err
	}
	result.OrderID = order.ID

	claimedIDs := make([]string, 0, len(claimed))
	for _, item := range claimed {
		claimedIDs = append(claimedIDs, item.ProductID)
	}
	if _, err := s.carts.RemoveLines(ctx, userID, claimedIDs); err != nil {
		// the order and its stock claims are already committed
		s.logger.Printf("checkout: prune cart user=%s order=%s error=%v", userID, order.ID, err)
	}

	s.logger.Printf("checkout: user=%s order=%s available=%d unavailable=%d total_cents=%d",
		userID, order.ID, len(result.Available), len(result.Unavailable), result.TotalCents)
	return result, nil
}

// lateUnavailable builds the unavailability report for a claim that lost the
// race, using a fresh stock read for the count.
func (s *Service) lateUnavailable(ctx context.Context, product *domain.Product, requested int) UnavailableItem {
	available := 0
	if fresh, err := s.products.GetByID(ctx, product.ID); err == nil {
		available = fresh.Stock
	}
	return UnavailableItem{
		Name:      product.Name,
		Reason:    fmt.Sprintf("Only %d items available", available),
		Requested: requested,
		Available: available,
	}
}

// releaseClaimed undoes stock claims after a downstream failure.
func (s *Service) releaseClaimed(ctx context.Context, claimed []AvailableItem) {
	for _, item := range claimed {
		if err := s.products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Printf("checkout: release stock product=%s qty=%d error=%v", item.ProductID, item.Quantity, err)
		}
	}
}
