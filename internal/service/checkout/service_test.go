package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-api/internal/domain"
	"github.com/google/uuid"
)

// memCartRepo keeps full cart semantics so tests can observe pruning and
// delete-on-empty.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string][]domain.CartLine{}}
}

func (r *memCartRepo) put(userID string, lines ...domain.CartLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[userID] = lines
}

func (r *memCartRepo) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := make([]domain.CartLine, len(lines))
	copy(copied, lines)
	return &domain.Cart{UserID: userID, Lines: copied}, nil
}

func (r *memCartRepo) RemoveLines(_ context.Context, userID string, productIDs []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range productIDs {
		drop[id] = true
	}
	var kept []domain.CartLine
	for _, line := range r.carts[userID] {
		if !drop[line.ProductID] {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		delete(r.carts, userID)
		return 0, nil
	}
	r.carts[userID] = kept
	return len(kept), nil
}

func (r *memCartRepo) hasCart(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.carts[userID]
	return ok
}

func (r *memCartRepo) lines(userID string) []domain.CartLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.carts[userID]
}

// memProductRepo guards stock with a mutex so the conditional claim is
// genuinely atomic under concurrent checkouts.
type memProductRepo struct {
	mu        sync.Mutex
	products  map[string]*domain.Product
	claimErrs map[string]error
}

func newMemProductRepo(products ...*domain.Product) *memProductRepo {
	repo := &memProductRepo{products: map[string]*domain.Product{}, claimErrs: map[string]error{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepo) ClaimStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.claimErrs[id]; ok {
		delete(r.claimErrs, id)
		return err
	}
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *memProductRepo) ReleaseStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *memProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type memOrderRepo struct {
	mu        sync.Mutex
	created   []domain.Order
	createErr error
}

func (r *memOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	o.ID = uuid.NewString()
	o.OrderDate = time.Now()
	r.created = append(r.created, o)
	return &o, nil
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func product(name string, priceCents int64, stock int) *domain.Product {
	return &domain.Product{ID: uuid.NewString(), Name: name, PriceCents: priceCents, Stock: stock}
}

func line(productID string, qty int) domain.CartLine {
	return domain.CartLine{ProductID: productID, Quantity: qty}
}

func TestCheckoutNoCart(t *testing.T) {
	svc := New(newMemCartRepo(), newMemProductRepo(), &memOrderRepo{}, nil)
	_, err := svc.Checkout(context.Background(), "u1")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := newMemCartRepo()
	carts.put("u1")
	svc := New(carts, newMemProductRepo(), &memOrderRepo{}, nil)
	_, err := svc.Checkout(context.Background(), "u1")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutPartialSuccess(t *testing.T) {
	a := product("Shirt", 1000, 5)
	b := product("Hoodie", 2500, 3)
	products := newMemProductRepo(a, b)
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 2), line(b.ID, 10))
	orders := &memOrderRepo{}
	svc := New(carts, products, orders, nil)

	result, err := svc.Checkout(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID == "" {
		t.Fatal("expected an order id")
	}
	if result.TotalCents != 2000 {
		t.Fatalf("expected total 2000, got %d", result.TotalCents)
	}
	if len(result.Available) != 1 || result.Available[0].Name != "Shirt" || result.Available[0].Quantity != 2 {
		t.Fatalf("unexpected available items: %+v", result.Available)
	}
	if len(result.Unavailable) != 1 {
		t.Fatalf("unexpected unavailable items: %+v", result.Unavailable)
	}
	if result.Unavailable[0].Available != 3 || result.Unavailable[0].Requested != 10 {
		t.Fatalf("unexpected unavailable report: %+v", result.Unavailable[0])
	}
	if result.Unavailable[0].Reason != "Only 3 items available" {
		t.Fatalf("unexpected reason: %q", result.Unavailable[0].Reason)
	}

	if got := products.stock(a.ID); got != 3 {
		t.Fatalf("expected stock 3 for ordered product, got %d", got)
	}
	if got := products.stock(b.ID); got != 3 {
		t.Fatalf("expected untouched stock 3, got %d", got)
	}

	remaining := carts.lines("u1")
	if len(remaining) != 1 || remaining[0].ProductID != b.ID {
		t.Fatalf("expected only the unfulfillable line to remain, got %+v", remaining)
	}

	if orders.count() != 1 {
		t.Fatalf("expected exactly one order, got %d", orders.count())
	}
	order := orders.created[0]
	if order.Status != domain.StatusPending {
		t.Fatalf("expected initial status Pending, got %s", order.Status)
	}
	if len(order.Lines) != 1 || order.Lines[0].ProductID != a.ID || order.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected order lines: %+v", order.Lines)
	}
}

func TestCheckoutFullSuccessDeletesCart(t *testing.T) {
	a := product("Mug", 1299, 10)
	products := newMemProductRepo(a)
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 4))
	svc := New(carts, products, &memOrderRepo{}, nil)

	result, err := svc.Checkout(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCents != 4*1299 {
		t.Fatalf("expected exact total %d, got %d", 4*1299, result.TotalCents)
	}
	if got := products.stock(a.ID); got != 6 {
		t.Fatalf("expected stock decremented to 6, got %d", got)
	}
	if carts.hasCart("u1") {
		t.Fatal("expected cart document to be deleted after full checkout")
	}
}

func TestCheckoutMissingProductReported(t *testing.T) {
	a := product("Shirt", 1000, 5)
	products := newMemProductRepo(a)
	carts := newMemCartRepo()
	carts.put("u1", line("gone", 1), line(a.ID, 1))
	svc := New(carts, products, &memOrderRepo{}, nil)

	result, err := svc.Checkout(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Unavailable) != 1 || result.Unavailable[0].Reason != "Product not found" {
		t.Fatalf("unexpected unavailable report: %+v", result.Unavailable)
	}
	if len(result.Available) != 1 {
		t.Fatalf("expected the existing product to be ordered: %+v", result.Available)
	}
}

func TestCheckoutNothingFulfillable(t *testing.T) {
	a := product("Shirt", 1000, 1)
	products := newMemProductRepo(a)
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 5), line("gone", 1))
	orders := &memOrderRepo{}
	svc := New(carts, products, orders, nil)

	result, err := svc.Checkout(context.Background(), "u1")
	if !errors.Is(err, domain.ErrNoFulfillableItems) {
		t.Fatalf("expected no fulfillable items error, got %v", err)
	}
	if result == nil || len(result.Unavailable) != 2 {
		t.Fatalf("expected both reasons reported, got %+v", result)
	}
	if orders.count() != 0 {
		t.Fatal("no order may be created")
	}
	if got := products.stock(a.ID); got != 1 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
	if !carts.hasCart("u1") {
		t.Fatal("cart must remain for retry")
	}
}

func TestCheckoutClaimRaceBecomesUnavailable(t *testing.T) {
	a := product("Shirt", 1000, 5)
	b := product("Mug", 500, 5)
	products := newMemProductRepo(a, b)
	// b's stock vanishes between the availability read and the claim
	products.claimErrs[b.ID] = domain.ErrInsufficientStock
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 1), line(b.ID, 2))
	svc := New(carts, products, &memOrderRepo{}, nil)

	result, err := svc.Checkout(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCents != 1000 {
		t.Fatalf("expected only the claimed line in the total, got %d", result.TotalCents)
	}
	if len(result.Unavailable) != 1 || result.Unavailable[0].Name != "Mug" {
		t.Fatalf("expected the lost claim reported, got %+v", result.Unavailable)
	}
	remaining := carts.lines("u1")
	if len(remaining) != 1 || remaining[0].ProductID != b.ID {
		t.Fatalf("expected the lost line to stay in the cart, got %+v", remaining)
	}
}

func TestCheckoutOrderCreateFailureReleasesStock(t *testing.T) {
	a := product("Shirt", 1000, 5)
	products := newMemProductRepo(a)
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 2))
	orders := &memOrderRepo{createErr: errors.New("db down")}
	svc := New(carts, products, orders, nil)

	_, err := svc.Checkout(context.Background(), "u1")
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected order creation error, got %v", err)
	}
	if got := products.stock(a.ID); got != 5 {
		t.Fatalf("expected claimed stock released back to 5, got %d", got)
	}
	if !carts.hasCart("u1") {
		t.Fatal("cart must be untouched when order creation fails")
	}
}

func TestCheckoutConcurrentLastUnit(t *testing.T) {
	a := product("Limited", 9999, 1)
	products := newMemProductRepo(a)
	carts := newMemCartRepo()
	carts.put("u1", line(a.ID, 1))
	carts.put("u2", line(a.ID, 1))
	orders := &memOrderRepo{}
	svc := New(carts, products, orders, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background(), user)
		}(i, user)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrNoFulfillableItems) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one checkout may claim the last unit, got %d", succeeded)
	}
	if orders.count() != 1 {
		t.Fatalf("expected one order, got %d", orders.count())
	}
	if got := products.stock(a.ID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}
