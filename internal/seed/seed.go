package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// seedNamespace makes product/category ids deterministic across runs so the
// seeder stays idempotent via ON CONFLICT (id).
var seedNamespace = uuid.MustParse("5f2c61b0-9c0e-4d3a-8f71-2b1a6f1c9d42")

type productSeed struct {
	Name        string
	Description string
	Brand       string
	PriceCents  int64
	Stock       int
	Category    string
}

// Apply inserts demo data for manual testing. Idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@storefront.local", "admin123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	categories := map[string]string{
		"Apparel":  "Clothing and accessories",
		"Homeware": "Things for the home",
	}
	for name, desc := range categories {
		if err := ensureCategory(ctx, pool, name, desc); err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
	}

	products := []productSeed{
		{Name: "Demo T-Shirt", Description: "Soft cotton tee", Brand: "Demo", PriceCents: 1999, Stock: 40, Category: "Apparel"},
		{Name: "Demo Hoodie", Description: "Warm fleece hoodie", Brand: "Demo", PriceCents: 4999, Stock: 15, Category: "Apparel"},
		{Name: "Demo Mug", Description: "Ceramic mug with demo logo", Brand: "Demo", PriceCents: 1299, Stock: 80, Category: "Homeware"},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, email, password_hash, role)
VALUES ('admin', $1, $2, 'admin')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, description string) error {
	id := uuid.NewSHA1(seedNamespace, []byte("category:"+name)).String()
	const q = `
INSERT INTO categories (id, name, description)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, id, name, description)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	id := uuid.NewSHA1(seedNamespace, []byte("product:"+p.Name)).String()
	categoryID := uuid.NewSHA1(seedNamespace, []byte("category:"+p.Category)).String()
	const q = `
INSERT INTO products (id, name, description, brand, price_cents, stock, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET description = EXCLUDED.description,
    brand = EXCLUDED.brand,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, id, p.Name, p.Description, p.Brand, p.PriceCents, p.Stock, categoryID)
	return err
}
