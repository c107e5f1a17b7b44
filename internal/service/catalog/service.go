package catalog

import (
	"context"
	"fmt"
	"strings"

	"storefront-api/internal/domain"
	productrepo "storefront-api/internal/repository/product"
)

// Service covers admin catalog CRUD and public browsing for products and
// categories.
type Service struct {
	products   productRepo
	categories categoryRepo
}

type productRepo interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)
}

type categoryRepo interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

func New(products productRepo, categories categoryRepo) *Service {
	return &Service{products: products, categories: categories}
}

// ProductInput mirrors incoming product payloads.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	CategoryID  string `json:"categoryId"`
	ImageURL    string `json:"imageUrl"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if in.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return fmt.Errorf("%w: category id required", domain.ErrValidation)
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Brand:       in.Brand,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Brand:       in.Brand,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
	})
}

// DeleteProduct removes a product unless an order still references it.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// CategoryInput mirrors incoming category payloads.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	return s.categories.Create(ctx, domain.Category{Name: name, Description: in.Description})
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	return s.categories.Update(ctx, domain.Category{ID: id, Name: name, Description: in.Description})
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
