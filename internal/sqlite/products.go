package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
)

// stock is cast on read so rows written by older clients with free-text
// stock still load.
const productColumns = `id, COALESCE(name, ''), CAST(COALESCE(stock, 0) AS INTEGER), COALESCE(color, '')`

type ProductRepo struct{ DB *DB }

func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*salon.Product, error) {
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
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE CAST(stock AS INTEGER) > 0 ORDER BY id`)
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]salon.Product, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []salon.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return products, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, in salon.ProductInput) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		`INSERT INTO products (name, stock, color) VALUES (?, ?, ?) RETURNING `+productColumns,
		in.Name, in.Stock, in.Color))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, in salon.ProductInput) (*salon.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		`UPDATE products SET name = ?, stock = ?, color = ? WHERE id = ? RETURNING `+productColumns,
		in.Name, in.Stock, in.Color, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (*salon.Product, error) {
	p, err := adjustStock(ctx, r.DB, id, delta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product stock %d: %w", id, err)
	}
	return p, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func adjustStock(ctx context.Context, q queryRower, id int64, delta int) (*salon.Product, error) {
	return scanProduct(q.QueryRowContext(ctx,
		`UPDATE products SET stock = stock + ? WHERE id = ? RETURNING `+productColumns,
		delta, id))
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if n == 0 {
		return salon.ErrNotFound
	}
	return nil
}
