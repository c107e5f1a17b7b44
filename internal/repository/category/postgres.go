package category

import (
	"context"
	"errors"

	"storefront-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// badUUID reports SQLSTATE 22P02: the caller-supplied id is not a valid uuid,
// so it cannot match any row.
func badUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
RETURNING id::text, created_at
`
	out := c
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Description).Scan(&out.ID, &out.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $2, description = $3
WHERE id = $1
RETURNING created_at
`
	out := c
	if err := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Description).Scan(&out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if badUUID(err) {
			return domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// products still reference this category
			return domain.ErrConflict
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const q = `
SELECT c.id::text, c.name, c.description, c.created_at,
       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
FROM categories c
WHERE c.id = $1
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.ProductsCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT c.id::text, c.name, c.description, c.created_at,
       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
FROM categories c
ORDER BY c.name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.ProductsCount); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
