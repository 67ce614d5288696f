package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
)

const orderColumns = `id, COALESCE(orderDate, ''), COALESCE(deliveryDate, ''), COALESCE(orderValue, ''),
	COALESCE(productUsed, ''), COALESCE(delivered, 0)`

type OrderRepo struct{ DB *DB }

func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{DB: db}
}

func scanOrder(row rowScanner) (*salon.Order, error) {
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *OrderRepo) List(ctx context.Context) ([]salon.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *OrderRepo) ListDelivered(ctx context.Context) ([]salon.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE delivered = ? ORDER BY id`, 1)
}

func (r *OrderRepo) query(ctx context.Context, q string, args ...any) ([]salon.Order, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []salon.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return orders, nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepo) CreateWithStock(ctx context.Context, in salon.OrderInput, delivered bool, productID int64) (*salon.Order, *salon.Product, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p, err := adjustStock(ctx, tx, productID, -1)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("product %d: %w", productID, salon.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to take stock of product %d: %w", productID, err)
	}

	o, err := scanOrder(tx.QueryRowContext(ctx, `
		INSERT INTO orders (orderDate, deliveryDate, orderValue, productUsed, delivered)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+orderColumns,
		in.OrderDate, in.DeliveryDate, in.OrderValue, p.Name, boolToInt(delivered)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return o, p, nil
}

func (r *OrderRepo) Update(ctx context.Context, id int64, in salon.OrderInput, delivered bool) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders
		SET orderDate = ?, deliveryDate = ?, orderValue = ?, productUsed = ?, delivered = ?
		WHERE id = ?
		RETURNING `+orderColumns,
		in.OrderDate, in.DeliveryDate, in.OrderValue, in.ProductUsed, boolToInt(delivered), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepo) MarkDelivered(ctx context.Context, id int64) (*salon.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx,
		`UPDATE orders SET delivered = 1 WHERE id = ? RETURNING `+orderColumns, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to finalize order %d: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	if n == 0 {
		return salon.ErrNotFound
	}
	return nil
}
