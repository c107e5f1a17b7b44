package order

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

// badUUID reports SQLSTATE 22P02: the caller-supplied id is not a valid uuid,
// so it cannot match any row.
func badUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := o
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, status)
VALUES ($1, $2, $3)
RETURNING id::text, order_date
`, o.UserID, o.TotalCents, o.Status).Scan(&out.ID, &out.OrderDate)
	if err != nil {
		return nil, err
	}

	for i, line := range o.Lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, position)
VALUES ($1, $2, $3, $4)
`, out.ID, line.ProductID, line.Quantity, i); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user=%s lines=%d total_cents=%d", out.ID, out.UserID, len(out.Lines), out.TotalCents)
	return &out, nil
}

const orderColumns = `id::text, user_id::text, total_cents, status, order_date`

func (r *postgresRepo) GetForUser(ctx context.Context, userID, id string) (*domain.Order, error) {
	return r.fetchOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

var sortColumns = map[string]string{
	"orderDate":  "order_date",
	"totalCents": "total_cents",
	"status":     "status",
}

func (r *postgresRepo) Search(ctx context.Context, f SearchFilter) ([]domain.Order, int, error) {
	base := `FROM orders o JOIN users u ON u.id = o.user_id`
	var args []any
	var where []string
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(o.id::text ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		where = append(where, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		where = append(where, fmt.Sprintf("o.order_date <= $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			base += " WHERE " + w
		} else {
			base += " AND " + w
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "order_date"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	q := fmt.Sprintf("SELECT o.id::text, o.user_id::text, o.total_cents, o.status, o.order_date %s ORDER BY o.%s %s", base, col, dir)
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
		return nil, 0, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
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

func (r *postgresRepo) DeleteRestoringStock(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT product_id::text, quantity FROM order_lines WHERE order_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		if badUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	type restore struct {
		productID string
		qty       int
	}
	var restores []restore
	for rows.Next() {
		var rs restore
		if err := rows.Scan(&rs.productID, &rs.qty); err != nil {
			rows.Close()
			return err
		}
		restores = append(restores, rs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rs := range restores {
		cmd, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1`, rs.productID, rs.qty)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return fmt.Errorf("restore stock: product %s missing", rs.productID)
		}
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: deleted id=%s restored_lines=%d", id, len(restores))
	return nil
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, args ...any) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, args...).Scan(&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || badUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, o *domain.Order) error {
	rows, err := r.pool.Query(ctx, `
SELECT product_id::text, quantity
FROM order_lines
WHERE order_id = $1
ORDER BY position ASC
`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return err
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.OrderDate); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
