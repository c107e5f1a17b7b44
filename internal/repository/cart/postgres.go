package cart

import (
	"context"
	"errors"

	"storefront-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// badUUID reports SQLSTATE 22P02: the caller-supplied id is not a valid uuid,
// so it cannot match any row.
func badUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	const linesQuery = `
SELECT product_id::text, quantity, added_at
FROM cart_lines
WHERE user_id = $1
ORDER BY added_at ASC, product_id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := domain.Cart{UserID: userID}
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.AddedAt); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, userID, productID string, qty int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO carts (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
`, userID, productID, qty); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetLineQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		return r.RemoveLine(ctx, userID, productID)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $3
WHERE user_id = $1 AND product_id = $2
`, userID, productID, qty)
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

func (r *postgresRepo) RemoveLine(ctx context.Context, userID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_id = $1 AND product_id = $2
`, userID, productID)
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

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	return err
}

func (r *postgresRepo) RemoveLines(ctx context.Context, userID string, productIDs []string) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_id = $1 AND product_id = ANY($2)
`, userID, productIDs); err != nil {
		return 0, err
	}

	var remaining int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM cart_lines WHERE user_id = $1`, userID).Scan(&remaining); err != nil {
		return 0, err
	}
	if remaining == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return remaining, nil
}
