package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedProducts serves the product list and picker from Redis and drops
// both entries on every write. Redis failures fall through to the store.
type CachedProducts struct {
	salon.ProductStore
	Redis *redis.Client
	Log   *zap.Logger
}

func NewCachedProducts(store salon.ProductStore, rdb *redis.Client, log *zap.Logger) *CachedProducts {
	return &CachedProducts{ProductStore: store, Redis: rdb, Log: log}
}

func (c *CachedProducts) List(ctx context.Context) ([]salon.Product, error) {
	return c.cached(ctx, KeyProductsAll, c.ProductStore.List)
}

func (c *CachedProducts) ListInStock(ctx context.Context) ([]salon.Product, error) {
	return c.cached(ctx, KeyProductsInStock, c.ProductStore.ListInStock)
}

func (c *CachedProducts) cached(ctx context.Context, key string, load func(context.Context) ([]salon.Product, error)) ([]salon.Product, error) {
	data, err := c.Redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var products []salon.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		c.Log.Warn("bad cached product list, reloading", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.Log.Warn("redis error, continuing with store", zap.String("key", key), zap.Error(err))
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(products); err == nil {
		if err := c.Redis.Set(ctx, key, b, TTLProducts).Err(); err != nil {
			c.Log.Warn("failed to cache product list", zap.String("key", key), zap.Error(err))
		}
	}
	return products, nil
}

func (c *CachedProducts) invalidate(ctx context.Context) {
	if err := c.Redis.Del(ctx, KeyProductsAll, KeyProductsInStock).Err(); err != nil {
		c.Log.Warn("failed to drop product cache", zap.Error(err))
	}
}

func (c *CachedProducts) Create(ctx context.Context, in salon.ProductInput) (*salon.Product, error) {
	defer c.invalidate(ctx)
	return c.ProductStore.Create(ctx, in)
}

func (c *CachedProducts) Update(ctx context.Context, id int64, in salon.ProductInput) (*salon.Product, error) {
	defer c.invalidate(ctx)
	return c.ProductStore.Update(ctx, id, in)
}

func (c *CachedProducts) AdjustStock(ctx context.Context, id int64, delta int) (*salon.Product, error) {
	defer c.invalidate(ctx)
	return c.ProductStore.AdjustStock(ctx, id, delta)
}

func (c *CachedProducts) Delete(ctx context.Context, id int64) error {
	defer c.invalidate(ctx)
	return c.ProductStore.Delete(ctx, id)
}

// Invalidate is for writers outside this decorator, such as order creation
// taking stock in its own transaction.
func (c *CachedProducts) Invalidate(ctx context.Context) { c.invalidate(ctx) }
