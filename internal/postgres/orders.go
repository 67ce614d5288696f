package postgres

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, COALESCE(orderDate, ''), COALESCE(deliveryDate, ''), COALESCE(orderValue, ''),
	COALESCE(productUsed, ''), COALESCE(delivered, 0)`

type OrderRepo struct{ DB *pgxpool.Pool }

func scanOrder(row pgx.Row) (*salon.Order, error) {
	var (
		o         salon.Order
		delivered int
	)
	if err := row.Scan(&o.ID, &o.OrderDate, &o.DeliveryDate, &o.OrderValue, &o.ProductUsed, &delivered); err != nil {
		return nil, err
	}
	o.Delivered = delivered != 0
	return &o, nil
}

func deliveredFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *OrderRepo) List(ctx context.Context) ([]salon.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *OrderRepo) ListDelivered(ctx context.Context) ([]salon.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE delivered = $1 ORDER BY id`, 1)
}

func (r *OrderRepo) query(ctx context.Context, q string, args ...any) ([]salon.Order, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	out := []salon.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// CreateWithStock: lock the product row, take one unit, then insert the
// order with the product's current name.
func (r *OrderRepo) CreateWithStock(ctx context.Context, in salon.OrderInput, delivered bool, productID int64) (*salon.Order, *salon.Product, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := adjustStock(ctx, tx, productID, -1)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("product %d: %w", productID, salon.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to take stock of product %d: %w", productID, err)
	}

	o, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (orderDate, deliveryDate, orderValue, productUsed, delivered)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		in.OrderDate, in.DeliveryDate, in.OrderValue, p.Name, deliveredFlag(delivered)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return o, p, nil
}

func (r *OrderRepo) Update(ctx context.Context, id int64, in salon.OrderInput, delivered bool) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `
		UPDATE orders
		SET orderDate = $1, deliveryDate = $2, orderValue = $3, productUsed = $4, delivered = $5
		WHERE id = $6
		RETURNING `+orderColumns,
		in.OrderDate, in.DeliveryDate, in.OrderValue, in.ProductUsed, deliveredFlag(delivered), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepo) MarkDelivered(ctx context.Context, id int64) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx,
		`UPDATE orders SET delivered = 1 WHERE id = $1 RETURNING `+orderColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("finalize order %d: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return salon.ErrNotFound
	}
	return nil
}
