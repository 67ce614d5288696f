package postgres

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, COALESCE(name, ''), COALESCE(stock, 0), COALESCE(color, '')`

type ProductRepo struct{ DB *pgxpool.Pool }

func scanProduct(row pgx.Row) (*salon.Product, error) {
	var p salon.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Stock, &p.Color); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]salon.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *ProductRepo) ListInStock(ctx context.Context) ([]salon.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock > 0 ORDER BY id`)
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]salon.Product, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	out := []salon.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, in salon.ProductInput) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`INSERT INTO products (name, stock, color) VALUES ($1, $2, $3) RETURNING `+productColumns,
		in.Name, in.Stock, in.Color))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, in salon.ProductInput) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`UPDATE products SET name = $1, stock = $2, color = $3 WHERE id = $4 RETURNING `+productColumns,
		in.Name, in.Stock, in.Color, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return p, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func adjustStock(ctx context.Context, q rowQuerier, id int64, delta int) (*salon.Product, error) {
	return scanProduct(q.QueryRow(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id = $2 RETURNING `+productColumns, delta, id))
}

func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (*salon.Product, error) {
	p, err := adjustStock(ctx, r.DB, id, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product stock %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return salon.ErrNotFound
	}
	return nil
}
