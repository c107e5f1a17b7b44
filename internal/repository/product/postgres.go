package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, description, brand, price_cents, stock, category_id::text, image_url, created_at`

// badUUID reports SQLSTATE 22P02: the caller-supplied id is not a valid uuid,
// so it cannot match any row.
func badUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, brand, price_cents, stock, category_id, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text, created_at
`
	out := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Brand, p.PriceCents, p.Stock, p.CategoryID, p.ImageURL).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, description = $3, brand = $4, price_cents = $5, stock = $6, category_id = $7, image_url = $8
WHERE id = $1
RETURNING created_at
`
	out := p
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Brand, p.PriceCents, p.Stock, p.CategoryID, p.ImageURL).
		Scan(&out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if badUUID(err) {
			return domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// still referenced by an order line
			return domain.ErrConflict
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.PriceCents, &p.Stock, &p.CategoryID, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price_cents",
	"createdAt": "created_at",
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	var args []any
	var where []string
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", len(args), len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
		f.Desc = true
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	q += fmt.Sprintf(" ORDER BY %s %s", col, dir)

	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		if badUUID(err) {
			return nil, fmt.Errorf("%w: invalid category id", domain.ErrValidation)
		}
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.PriceCents, &p.Stock, &p.CategoryID, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ClaimStock(ctx context.Context, id string, qty int) error {
	const q = `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`
	cmd, err := r.pool.Exec(ctx, q, id, qty)
	if err != nil {
		if badUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		// distinguish a missing product from a lost race on stock
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *postgresRepo) ReleaseStock(ctx context.Context, id string, qty int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1`, id, qty)
	if err != nil {
		if badUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
