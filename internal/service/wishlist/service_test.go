package wishlist

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/domain"
)

type stubRepo struct {
	items   []domain.Product
	added   []string
	removed []string
	cleared int
}

func (r *stubRepo) List(_ context.Context, _ string) ([]domain.Product, error) {
	return r.items, nil
}

func (r *stubRepo) Add(_ context.Context, _, productID string) error {
	r.added = append(r.added, productID)
	return nil
}

func (r *stubRepo) Remove(_ context.Context, _, productID string) error {
	r.removed = append(r.removed, productID)
	return nil
}

func (r *stubRepo) Clear(_ context.Context, _ string) error {
	r.cleared++
	return nil
}

type stubProducts struct {
	known map[string]bool
}

func (r *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if !r.known[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Product{ID: id}, nil
}

func TestAdd(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProducts{known: map[string]bool{"p1": true}})
	if err := svc.Add(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.added) != 1 || repo.added[0] != "p1" {
		t.Fatalf("unexpected add calls: %v", repo.added)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProducts{known: map[string]bool{}})
	if err := svc.Add(context.Background(), "u1", "p9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.added) != 0 {
		t.Fatal("unknown product must not be added")
	}
}

func TestListNeverNil(t *testing.T) {
	svc := New(&stubRepo{}, &stubProducts{})
	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Fatal("empty wishlist must marshal as [], not null")
	}
}

func TestRemoveAndClear(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProducts{})
	if err := svc.Remove(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.removed) != 1 || repo.cleared != 1 {
		t.Fatalf("unexpected calls: removed=%v cleared=%d", repo.removed, repo.cleared)
	}
}
