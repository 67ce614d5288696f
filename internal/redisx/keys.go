package redisx

import "time"

const (
	// Product list cache: products:all -> JSON []Product
	KeyProductsAll = "products:all"

	// Picker cache: products:in_stock -> JSON []Product with stock > 0
	KeyProductsInStock = "products:in_stock"

	// Idempotent order create: idem:order:create:{key} -> order id
	KeyIdemOrderCreate = "idem:order:create:%s"

	// Event dedup: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProducts    = 5 * time.Minute
	TTLIdempotency = 24 * time.Hour
	// held while a create runs; bounds how long a crashed request blocks its key
	TTLIdempotencyPending = 30 * time.Second
	TTLDedup       = 48 * time.Hour
)
