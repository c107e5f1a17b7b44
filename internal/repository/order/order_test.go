package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"storefront-api/internal/domain"
	"storefront-api/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	userID := insertUser(ctx, t, pool, "a@b.test")
	shirt := insertProduct(ctx, t, pool, "Shirt", 1500, 10)
	mug := insertProduct(ctx, t, pool, "Mug", 700, 10)

	created, err := repo.Create(ctx, domain.Order{
		UserID:     userID,
		TotalCents: 2*1500 + 700,
		Status:     domain.StatusPending,
		Lines: []domain.OrderLine{
			{ProductID: shirt, Quantity: 2},
			{ProductID: mug, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.OrderDate.IsZero() {
		t.Fatalf("expected id and date set, got %+v", created)
	}

	got, err := repo.GetForUser(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if got.TotalCents != 3700 || len(got.Lines) != 2 {
		t.Fatalf("unexpected order %+v", got)
	}
	// line order is stable
	if got.Lines[0].ProductID != shirt || got.Lines[1].ProductID != mug {
		t.Fatalf("unexpected line order %+v", got.Lines)
	}

	other := insertUser(ctx, t, pool, "other@b.test")
	if _, err := repo.GetForUser(ctx, other, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
}

func TestPostgres_Search(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	userID := insertUser(ctx, t, pool, "buyer@shop.test")
	shirt := insertProduct(ctx, t, pool, "Shirt", 1500, 10)

	for i, status := range []string{domain.StatusPending, domain.StatusShipped, domain.StatusShipped} {
		_, err := repo.Create(ctx, domain.Order{
			UserID:     userID,
			TotalCents: int64(1000 * (i + 1)),
			Status:     status,
			Lines:      []domain.OrderLine{{ProductID: shirt, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	orders, total, err := repo.Search(ctx, SearchFilter{Status: domain.StatusShipped, Limit: 10})
	if err != nil {
		t.Fatalf("Search by status: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 shipped orders, got total=%d n=%d", total, len(orders))
	}

	orders, total, err = repo.Search(ctx, SearchFilter{Search: "buyer@", Limit: 1, SortBy: "totalCents", Desc: true})
	if err != nil {
		t.Fatalf("Search by email: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(orders) != 1 || orders[0].TotalCents != 3000 {
		t.Fatalf("expected highest total first, got %+v", orders)
	}
}

func TestPostgres_DeleteRestoringStock(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	userID := insertUser(ctx, t, pool, "a@b.test")
	shirt := insertProduct(ctx, t, pool, "Shirt", 1500, 3)
	mug := insertProduct(ctx, t, pool, "Mug", 700, 5)

	created, err := repo.Create(ctx, domain.Order{
		UserID:     userID,
		TotalCents: 3700,
		Status:     domain.StatusPending,
		Lines: []domain.OrderLine{
			{ProductID: shirt, Quantity: 2},
			{ProductID: mug, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.DeleteRestoringStock(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRestoringStock: %v", err)
	}

	if _, err := repo.GetForUser(ctx, userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected order gone, got %v", err)
	}
	if got := stock(ctx, t, pool, shirt); got != 5 {
		t.Fatalf("expected shirt stock restored to 5, got %d", got)
	}
	if got := stock(ctx, t, pool, mug); got != 6 {
		t.Fatalf("expected mug stock restored to 6, got %d", got)
	}

	if err := repo.DeleteRestoringStock(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPostgres_MalformedOrderID(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	userID := insertUser(ctx, t, pool, "a@b.test")

	if _, err := repo.GetForUser(ctx, userID, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetForUser: expected not found, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "not-a-uuid", domain.StatusShipped); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateStatus: expected not found, got %v", err)
	}
	if err := repo.DeleteRestoringStock(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteRestoringStock: expected not found, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE wishlist_items, order_lines, orders, cart_lines, carts, products, categories, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO users (username, email, password_hash) VALUES ('tester', $1, 'x')
RETURNING id::text
`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string, priceCents int64, stockCount int) string {
	t.Helper()
	var catID string
	err := pool.QueryRow(ctx, `
INSERT INTO categories (name) VALUES ('cat-' || $1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`, name).Scan(&catID)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	var id string
	err = pool.QueryRow(ctx, `
INSERT INTO products (name, price_cents, stock, category_id) VALUES ($1, $2, $3, $4)
RETURNING id::text
`, name, priceCents, stockCount, catID).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func stock(ctx context.Context, t *testing.T, pool *pgxpool.Pool, productID string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&n); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return n
}
