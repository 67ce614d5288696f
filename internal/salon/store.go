package salon

import "context"

type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	ListInStock(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type OrderStore interface {
	List(ctx context.Context) ([]Order, error)
	ListDelivered(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	// CreateWithStock takes one unit of productID's stock and inserts the
	// order in one transaction. ProductUsed is copied from the product row,
	// in.ProductUsed is ignored.
	CreateWithStock(ctx context.Context, in OrderInput, delivered bool, productID int64) (*Order, *Product, error)
	Update(ctx context.Context, id int64, in OrderInput, delivered bool) (*Order, error)
	MarkDelivered(ctx context.Context, id int64) (*Order, error)
	Delete(ctx context.Context, id int64) error
}
