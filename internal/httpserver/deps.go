package httpserver

import (
	"context"

	"storefront-api/internal/domain"
	orderrepo "storefront-api/internal/repository/order"
	productrepo "storefront-api/internal/repository/product"
	"storefront-api/internal/service/catalog"
	"storefront-api/internal/service/checkout"
	ordersvc "storefront-api/internal/service/order"
	usersvc "storefront-api/internal/service/user"
)

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	VerifyToken(token string) (*domain.Principal, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type catalogService interface {
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)

	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in catalog.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type cartService interface {
	AddLine(ctx context.Context, userID, productID string, qty int) error
	UpdateLine(ctx context.Context, userID, productID string, qty int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	Count(ctx context.Context, userID string) (int, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, userID string) (*checkout.Result, error)
}

type orderService interface {
	GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	Search(ctx context.Context, f orderrepo.SearchFilter, page int) (*ordersvc.SearchPage, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Delete(ctx context.Context, orderID string) error
}

type wishlistService interface {
	List(ctx context.Context, userID string) ([]domain.Product, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}
